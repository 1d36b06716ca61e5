// Package expr builds DynamoDB update expressions.
package expr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrEmptyUpdate is returned when building an expression with no assignments.
var ErrEmptyUpdate = errors.New("update expression has no assignments")

// UpdateBuilder constructs SET update expressions for DynamoDB.
// It provides a fluent API that auto-generates name and value
// placeholders to prevent manual synchronization errors.
type UpdateBuilder struct {
	assignments []assignment
}

type assignment struct {
	attr  string
	value types.AttributeValue
}

// Update creates a new empty UpdateBuilder.
func Update() *UpdateBuilder {
	return &UpdateBuilder{}
}

// Set adds a `SET #attr = :value` assignment.
// Multiple calls are combined into a single SET clause.
func (b *UpdateBuilder) Set(attr string, value types.AttributeValue) *UpdateBuilder {
	newBuilder := b.clone()
	newBuilder.assignments = append(newBuilder.assignments, assignment{attr: attr, value: value})
	return newBuilder
}

// SetAll adds one assignment per entry of the attribute map, in
// deterministic attribute-name order. Key attributes must not be
// assigned and are excluded via skip.
func (b *UpdateBuilder) SetAll(item map[string]types.AttributeValue, skip ...string) *UpdateBuilder {
	skipped := make(map[string]struct{}, len(skip))
	for _, attr := range skip {
		skipped[attr] = struct{}{}
	}

	attrs := make([]string, 0, len(item))
	for attr := range item {
		if _, ok := skipped[attr]; ok {
			continue
		}
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	newBuilder := b.clone()
	for _, attr := range attrs {
		newBuilder.assignments = append(newBuilder.assignments, assignment{attr: attr, value: item[attr]})
	}
	return newBuilder
}

// Build constructs the final expression string with its placeholder maps.
func (b *UpdateBuilder) Build() (Expression, error) {
	if len(b.assignments) == 0 {
		return Expression{}, ErrEmptyUpdate
	}

	parts := make([]string, 0, len(b.assignments))
	names := make(map[string]string, len(b.assignments))
	values := make(map[string]types.AttributeValue, len(b.assignments))
	for i, a := range b.assignments {
		namePlaceholder := fmt.Sprintf("#n%d", i)
		valuePlaceholder := fmt.Sprintf(":v%d", i)
		parts = append(parts, fmt.Sprintf("%s = %s", namePlaceholder, valuePlaceholder))
		names[namePlaceholder] = a.attr
		values[valuePlaceholder] = a.value
	}

	return Expression{
		Update: "SET " + strings.Join(parts, ", "),
		Names:  names,
		Values: values,
	}, nil
}

// Expression is a built update expression ready for an UpdateItem call.
type Expression struct {
	Update string
	Names  map[string]string
	Values map[string]types.AttributeValue
}

func (b *UpdateBuilder) clone() *UpdateBuilder {
	newBuilder := &UpdateBuilder{
		assignments: make([]assignment, len(b.assignments)),
	}
	copy(newBuilder.assignments, b.assignments)
	return newBuilder
}
