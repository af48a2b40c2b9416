package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Column layout of the books dataset. The header line is discarded; columns
// are positional.
const (
	colID = iota
	colBookID
	colBestBookID
	colWorkID
	colBooksCount
	colISBN
	colISBN13
	colAuthors
	colOriginalPublicationYear
	colOriginalTitle
	colTitle
	colLanguageCode
	colAverageRating
	colRatingsCount
	colWorkRatingsCount
	colWorkTextReviewsCount
	colRatings1
	colRatings2
	colRatings3
	colRatings4
	colRatings5
	colImageURL
	colSmallImageURL
)

// BookReader reads raw book records from a delimited stream, one at a time.
type BookReader struct {
	csv        *csv.Reader
	skipHeader bool
}

// NewBookReader wraps the stream in a record reader. The first line is
// treated as a header and discarded.
func NewBookReader(r io.Reader) *BookReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	return &BookReader{csv: reader, skipHeader: true}
}

// Read returns the next record, or io.EOF when the stream is exhausted.
func (r *BookReader) Read() (*BookRecord, error) {
	if r.skipHeader {
		r.skipHeader = false
		if _, err := r.csv.Read(); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}

	return &BookRecord{
		ID:                      field(record, colID),
		BookID:                  field(record, colBookID),
		BestBookID:              field(record, colBestBookID),
		WorkID:                  field(record, colWorkID),
		BooksCount:              field(record, colBooksCount),
		ISBN:                    field(record, colISBN),
		ISBN13:                  field(record, colISBN13),
		Authors:                 field(record, colAuthors),
		OriginalPublicationYear: field(record, colOriginalPublicationYear),
		OriginalTitle:           field(record, colOriginalTitle),
		Title:                   field(record, colTitle),
		LanguageCode:            field(record, colLanguageCode),
		AverageRating:           field(record, colAverageRating),
		RatingsCount:            field(record, colRatingsCount),
		WorkRatingsCount:        field(record, colWorkRatingsCount),
		WorkTextReviewsCount:    field(record, colWorkTextReviewsCount),
		Ratings1:                field(record, colRatings1),
		Ratings2:                field(record, colRatings2),
		Ratings3:                field(record, colRatings3),
		Ratings4:                field(record, colRatings4),
		Ratings5:                field(record, colRatings5),
		ImageURL:                field(record, colImageURL),
		SmallImageURL:           field(record, colSmallImageURL),
	}, nil
}

// ReviewReader reads raw review records: book_id, user_id, rating.
type ReviewReader struct {
	csv        *csv.Reader
	skipHeader bool
}

// NewReviewReader wraps the stream in a record reader. The first line is
// treated as a header and discarded.
func NewReviewReader(r io.Reader) *ReviewReader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return &ReviewReader{csv: reader, skipHeader: true}
}

// Read returns the next record, or io.EOF when the stream is exhausted.
func (r *ReviewReader) Read() (*ReviewRecord, error) {
	if r.skipHeader {
		r.skipHeader = false
		if _, err := r.csv.Read(); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}

	return &ReviewRecord{
		BookID: field(record, 0),
		UserID: field(record, 1),
		Rating: field(record, 2),
	}, nil
}

// field safely gets a value from a record, returning "" for short rows.
func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
