package importer

// BookRecord is one raw row of the books dataset, in CSV shape. Fields stay
// untyped text until coercion.
type BookRecord struct {
	ID                      string
	BookID                  string
	BestBookID              string
	WorkID                  string
	BooksCount              string
	ISBN                    string
	ISBN13                  string
	Authors                 string
	OriginalPublicationYear string
	OriginalTitle           string
	Title                   string
	LanguageCode            string
	AverageRating           string
	RatingsCount            string
	WorkRatingsCount        string
	WorkTextReviewsCount    string
	Ratings1                string
	Ratings2                string
	Ratings3                string
	Ratings4                string
	Ratings5                string
	ImageURL                string
	SmallImageURL           string
}

// ReviewRecord is one raw row of the reviews dataset.
type ReviewRecord struct {
	BookID string
	UserID string
	Rating string
}
