package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prodcat/catalog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteCSV(t *testing.T) {
	// given
	products := []service.ProductDto{
		{ID: 1, Name: "A", Price: 1.5, Stock: 2},
		{ID: 2, Name: "B", Price: 2.5, Stock: 3},
	}
	var buf bytes.Buffer
	// when
	err := WriteCSV(&buf, products)
	// then: header row plus the rows in result order
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "PRODUCTID,PRODUCTNAME,PRICE,STOCK", strings.TrimSpace(lines[0]))
	assert.Equal(t, "1,A,1.5,2", strings.TrimSpace(lines[1]))
	assert.Equal(t, "2,B,2.5,3", strings.TrimSpace(lines[2]))
}

func Test_WriteCSV_QuotesNamesWithCommas(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []service.ProductDto{{ID: 1, Name: `Bolt, M8`, Price: 0.25, Stock: 1000}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Bolt, M8"`)
}

func Test_WriteCSV_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	// then: the empty-result signal, not a generic failure, and no output
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Zero(t, buf.Len())
}
