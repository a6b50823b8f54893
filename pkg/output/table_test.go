package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTable tests the behavior of NewTable.
func TestNewTable(t *testing.T) {
	table := NewTable()
	require.NotNil(t, table)
	assert.Equal(t, 0, table.ColumnCount())
	assert.Equal(t, "  ", table.separator)
}

// TestTableAddColumn tests the behavior of AddColumn.
//
// It verifies:
//   - Adds column with header width
//   - Chain returns same table instance
func TestTableAddColumn(t *testing.T) {
	table := NewTable().AddColumn("VERSION").AddColumn("#")
	assert.Equal(t, 2, table.ColumnCount())
	assert.Equal(t, 7, table.GetColumnWidth(0))
	assert.Equal(t, 1, table.GetColumnWidth(1))
	assert.Equal(t, 0, table.GetColumnWidth(5))

	same := NewTable()
	assert.Same(t, same, same.AddColumn("X"))
}

// TestTableConditionalColumn tests hidden columns.
func TestTableConditionalColumn(t *testing.T) {
	table := NewTable().AddColumn("A").AddConditionalColumn("HIDDEN", false).AddColumn("B")
	assert.True(t, table.IsColumnHidden(1))
	assert.False(t, table.IsColumnHidden(0))
	assert.True(t, table.IsColumnHidden(9))

	assert.Equal(t, "A  B", table.HeaderRow())
	assert.Equal(t, "1  3", table.FormatRow("1", "2", "3"))
}

// TestTableFormatting tests width updates and Unicode-aware padding.
func TestTableFormatting(t *testing.T) {
	table := NewTable().AddColumn("STATUS").AddColumn("VERSION")
	table.UpdateWidths("🟠 Planned", "< 1")

	assert.Equal(t, 10, table.GetColumnWidth(0))
	assert.Equal(t, "STATUS      VERSION", table.HeaderRow())
	assert.Equal(t, "----------  -------", table.SeparatorRow())
	assert.Equal(t, "🟠 Planned  < 1", table.FormatRow("🟠 Planned", "< 1"))
	assert.Equal(t, "x", table.FormatRow("x"))

	var buf bytes.Buffer
	table.WithSeparator(" | ").Fprint(&buf)
	assert.Equal(t, "STATUS     | VERSION\n---------- | -------\n", buf.String())
}

// TestWidthHelpers tests DisplayWidth, ToWidth and Truncate.
func TestWidthHelpers(t *testing.T) {
	assert.Equal(t, 2, DisplayWidth("中"))
	assert.Equal(t, "ab  ", ToWidth("ab", 4))
	assert.Equal(t, "abcdef", ToWidth("abcdef", 3))
	assert.Equal(t, "ab", ToWidth("ab", 0))
	assert.Equal(t, "abc...", Truncate("abcdefghij", 6))
	assert.Equal(t, "abc", Truncate("abc", 6))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
