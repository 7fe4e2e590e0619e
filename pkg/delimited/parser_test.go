package delimited

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
	}{
		{`a,b,c`, []string{"a", "b", "c"}},
		{`a,,c,`, []string{"a", "", "c", ""}},
		{`a,"b,c",d`, []string{"a", "b,c", "d"}},
		{`x\,y,z`, []string{"x,y", "z"}},
		{`"x\"y",z`, []string{`x"y`, "z"}},
		{`"a""b"`, []string{"ab"}},
		{`a\\b`, []string{`a\b`}},
		{`"unterminated,x`, []string{"unterminated,x"}},
		{`trailing\`, []string{"trailing"}},
		{`"",""`, []string{"", ""}},
		{`Zürich "HB",8.54`, []string{"Zürich HB", "8.54"}},
	}

	for _, test := range tests {
		fields, ok := ParseLine(test.line)
		require.True(t, ok, test.line)
		assert.Equal(t, test.expected, fields, test.line)
	}
}

func TestParseLineKeepsBytes(t *testing.T) {
	invalid := "caf\xe9"

	plain, ok := ParseLine(invalid + ",x")
	require.True(t, ok)

	quoted, ok := ParseLine(`"` + invalid + `",x`)
	require.True(t, ok)

	escaped, ok := ParseLine(`\` + invalid + `,x`)
	require.True(t, ok)

	assert.Equal(t, []string{invalid, "x"}, plain)
	assert.Equal(t, plain, quoted)
	assert.Equal(t, plain, escaped)

	fields, ok := ParseLine(`"Zürich\\HB",\ü`)
	require.True(t, ok)
	assert.Equal(t, []string{"Zürich\\HB", "ü"}, fields)
}

func TestReaderTrimsHeader(t *testing.T) {
	reader := NewReader(" a , b\n 1 , 2 ")

	header, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)

	row, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{" 1 ", " 2 "}, row)
}

func TestParseLineBlank(t *testing.T) {
	fields, ok := ParseLine("")
	assert.False(t, ok)
	assert.Nil(t, fields)
}

func TestParse(t *testing.T) {
	text := "stop_id,stop_name\r\n\r\nA,\"Main St, North\"\n\nB,Depot\n"

	lines := Parse(text)
	require.Len(t, lines, 3)

	assert.Equal(t, Line{Number: 1, Fields: []string{"stop_id", "stop_name"}}, lines[0])
	assert.Equal(t, Line{Number: 3, Fields: []string{"A", "Main St, North"}}, lines[1])
	assert.Equal(t, Line{Number: 5, Fields: []string{"B", "Depot"}}, lines[2])
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\r\nb\rc\n"))
	assert.Empty(t, SplitLines("\n\n"))
}

func TestReader(t *testing.T) {
	reader := NewReader("a,b\n1,2\n\n3,4")

	assert.Equal(t, 0, reader.LineNumber())

	header, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, 1, reader.LineNumber())

	rest, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rest)
	assert.Equal(t, 4, reader.LineNumber())

	_, err = reader.Read()
	assert.ErrorIs(t, err, io.EOF)
}
