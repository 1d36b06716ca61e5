package expr

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBuilder(t *testing.T) {
	t.Run("builds a SET expression with placeholders", func(t *testing.T) {
		expression, err := Update().
			Set("state", &types.AttributeValueMemberS{Value: "SOLD"}).
			Set("hash", &types.AttributeValueMemberS{Value: "abc"}).
			Build()
		require.NoError(t, err)

		assert.Equal(t, "SET #n0 = :v0, #n1 = :v1", expression.Update)
		assert.Equal(t, map[string]string{"#n0": "state", "#n1": "hash"}, expression.Names)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "SOLD"}, expression.Values[":v0"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "abc"}, expression.Values[":v1"])
	})

	t.Run("SetAll orders attributes deterministically and skips keys", func(t *testing.T) {
		item := map[string]types.AttributeValue{
			"pk":    &types.AttributeValueMemberS{Value: "item#x"},
			"sk":    &types.AttributeValueMemberS{Value: "item#materialized"},
			"state": &types.AttributeValueMemberS{Value: "SOLD"},
			"hash":  &types.AttributeValueMemberS{Value: "abc"},
		}

		expression, err := Update().SetAll(item, "pk", "sk").Build()
		require.NoError(t, err)

		assert.Equal(t, "SET #n0 = :v0, #n1 = :v1", expression.Update)
		assert.Equal(t, map[string]string{"#n0": "hash", "#n1": "state"}, expression.Names)
	})

	t.Run("empty expression is an error", func(t *testing.T) {
		_, err := Update().Build()
		assert.ErrorIs(t, err, ErrEmptyUpdate)
	})

	t.Run("builder is immutable", func(t *testing.T) {
		base := Update().Set("state", &types.AttributeValueMemberS{Value: "SOLD"})
		_ = base.Set("hash", &types.AttributeValueMemberS{Value: "abc"})

		expression, err := base.Build()
		require.NoError(t, err)
		assert.Equal(t, "SET #n0 = :v0", expression.Update)
	})
}
