package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/prodcat/catalog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts(n int) []service.ProductDto {
	products := make([]service.ProductDto, n)
	for i := range products {
		products[i] = service.ProductDto{
			ID:    int64(i + 1),
			Name:  fmt.Sprintf("Product %d", i+1),
			Price: float64(i) + 0.99,
			Stock: int32(i % 20),
		}
	}
	return products
}

func Test_WritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, sampleProducts(3))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
}

func Test_WritePDF_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, nil)
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Zero(t, buf.Len())
}

func Test_BuildPDF_SinglePage(t *testing.T) {
	doc := buildPDF(sampleProducts(5), time.Unix(0, 0))
	require.False(t, doc.Err(), "pdf generation reported an error")
	assert.Equal(t, 1, doc.PageCount())
}

func Test_BuildPDF_BreaksPagesAndRepeatsHeader(t *testing.T) {
	// Enough rows to force several page breaks at 20pt per row on A4.
	doc := buildPDF(sampleProducts(200), time.Unix(0, 0))
	require.False(t, doc.Err(), "pdf generation reported an error")
	assert.GreaterOrEqual(t, doc.PageCount(), 5)
}
