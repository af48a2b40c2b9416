package importer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookReader(t *testing.T) {
	t.Run("skips header and reads positional fields", func(t *testing.T) {
		input := booksHeader + "\n" + bookRow("2767052", "9780439023480.0") + "\n"
		reader := NewBookReader(strings.NewReader(input))

		rec, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "2767052", rec.BookID)
		assert.Equal(t, "439023483", rec.ISBN)
		assert.Equal(t, "9780439023480.0", rec.ISBN13)
		assert.Equal(t, "Suzanne Collins", rec.Authors)

		_, err = reader.Read()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("quoted fields with commas survive", func(t *testing.T) {
		row := `1,5,5,5,1,,null,"Collins, Suzanne",2008.0,,"The Hunger Games (The Hunger Games, #1)",eng,4.34,10,10,1,1,1,1,3,4,,`
		reader := NewBookReader(strings.NewReader(booksHeader + "\n" + row + "\n"))

		rec, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "Collins, Suzanne", rec.Authors)
		assert.Equal(t, "The Hunger Games (The Hunger Games, #1)", rec.Title)
	})

	t.Run("short rows yield empty trailing fields", func(t *testing.T) {
		reader := NewBookReader(strings.NewReader(booksHeader + "\n1,42,42\n"))

		rec, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, "42", rec.BookID)
		assert.Equal(t, "", rec.ISBN)
		assert.Equal(t, "", rec.SmallImageURL)
	})

	t.Run("header-only stream hits EOF immediately", func(t *testing.T) {
		reader := NewBookReader(strings.NewReader(booksHeader + "\n"))
		_, err := reader.Read()
		assert.Equal(t, io.EOF, err)
	})
}

func TestReviewReader(t *testing.T) {
	reader := NewReviewReader(strings.NewReader(reviewsHeader + "\n100,7,5\n999,7,1\n"))

	rec, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, "100", rec.BookID)
	assert.Equal(t, "7", rec.UserID)
	assert.Equal(t, "5", rec.Rating)

	rec, err = reader.Read()
	require.NoError(t, err)
	assert.Equal(t, "999", rec.BookID)

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}
