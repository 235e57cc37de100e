package rules

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwatch/shelfwatch/pkg/types"
)

const sampleYAML = `name: restock
operator: OR
enabled: true
criteria:
  - field: Qty
    field_type: number
    condition: less_than
    value: 5
    enabled: true
  - field: Condition
    condition: equals
    value: Poor
    priority: 1
    enabled: true
  - field: Stock Available
    condition: is_false
    enabled: false
`

func TestDecode(t *testing.T) {
	rs, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "restock", rs.Name)
	assert.Equal(t, types.OperatorOR, rs.Operator)
	assert.True(t, rs.Enabled)
	require.Len(t, rs.Criteria, 3)
	assert.Equal(t, "Qty", rs.Criteria[0].FieldName)
	assert.Equal(t, float64(5), rs.Criteria[0].Value, "YAML integers decode as float64")
	assert.Equal(t, types.ConditionIsFalse, rs.Criteria[2].Condition)
	assert.False(t, rs.Criteria[2].Enabled)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("name: x\noperator: XOR\n"))
	assert.ErrorIs(t, err, types.ErrInvalidOperator)

	_, err = Decode(strings.NewReader("operator: AND\n"))
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = Decode(strings.NewReader("not yaml: [\n"))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	original, err := Decode(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, original))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}
