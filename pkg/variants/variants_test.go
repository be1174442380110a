package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariantsFromText_SingleBlock(t *testing.T) {
	got := ParseVariantsFromText("**Coca Cola**\n- 300ml @ ₹40\n- 500ml @ ₹65\n")

	require.Len(t, got.Segments, 1)
	seg := got.Segments[0]
	assert.Equal(t, SegmentProducts, seg.Type)
	assert.Equal(t, "Coca Cola", seg.Title)
	require.Len(t, seg.Products, 2)

	assert.Equal(t, "300ml", seg.Products[0].Quantity)
	assert.Equal(t, 40.0, *seg.Products[0].Price)
	assert.Equal(t, "coca-cola-var-0", seg.Products[0].ID)
	assert.Equal(t, "500ml", seg.Products[1].Quantity)
	assert.Equal(t, 65.0, *seg.Products[1].Price)
	assert.Equal(t, "coca-cola", seg.Products[1].GroupKey)
}

func TestParseVariantsFromText_Interleaved(t *testing.T) {
	text := "Here are some options:\n\n**Amul Butter**:\n- 100g @ Rs. 56\n- family pack, ask store\n- 500g @ Rs 275.50\n\nWant me to add one?"

	got := ParseVariantsFromText(text)

	require.Len(t, got.Segments, 3)
	assert.Equal(t, SegmentText, got.Segments[0].Type)
	assert.Equal(t, "Here are some options:\n", got.Segments[0].Text)

	products := got.Segments[1].Products
	require.Len(t, products, 2)
	assert.Equal(t, "100g", products[0].Quantity)
	assert.Equal(t, 275.5, *products[1].Price)
	assert.Equal(t, "amul-butter-var-1", products[1].ID)

	assert.Equal(t, "\nWant me to add one?", got.Segments[2].Text)
}

func TestParseVariantsFromText_HeaderWithoutPricedBullets(t *testing.T) {
	text := "**Tips**\n- order before 9pm\n- carry a bag"
	got := ParseVariantsFromText(text)

	require.Len(t, got.Segments, 1)
	assert.Equal(t, SegmentText, got.Segments[0].Type)
	assert.Equal(t, text, got.Segments[0].Text)
}

func TestParseVariantsFromText_PlainText(t *testing.T) {
	got := ParseVariantsFromText("No products here.")
	assert.Equal(t, Result{Segments: []Segment{{Type: SegmentText, Text: "No products here."}}}, got)
}

func TestParseVariantsFromText_RejectsLooseLines(t *testing.T) {
	tests := []string{
		"- 300ml for ₹40",
		"- 300ml @ 40",
		"- 300ml @ ₹40.999",
		"300ml @ ₹40",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			got := ParseVariantsFromText("**Coke**\n" + line)
			require.Len(t, got.Segments, 1)
			assert.Equal(t, SegmentText, got.Segments[0].Type)
		})
	}
}
