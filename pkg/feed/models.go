package feed

type Agency struct {
	ID       string `csv:"agency_id" json:"id" groups:"basic,detailed"`
	Name     string `csv:"agency_name" json:"name" groups:"basic,detailed"`
	URL      string `csv:"agency_url" json:"url" groups:"basic,detailed"`
	Timezone string `csv:"agency_timezone" json:"timezone" groups:"basic,detailed"`
	Language string `csv:"agency_lang" json:"language,omitempty" groups:"detailed"`
	Phone    string `csv:"agency_phone" json:"phone,omitempty" groups:"detailed"`
	FareURL  string `csv:"agency_fare_url" json:"fare_url,omitempty" groups:"detailed"`
	Email    string `csv:"agency_email" json:"email,omitempty" groups:"detailed"`
}

type FeedInfo struct {
	PublisherName string `csv:"feed_publisher_name" json:"publisher_name" groups:"detailed"`
	PublisherURL  string `csv:"feed_publisher_url" json:"publisher_url" groups:"detailed"`
	Language      string `csv:"feed_lang" json:"language" groups:"detailed"`
	StartDate     string `csv:"feed_start_date" json:"start_date,omitempty" groups:"detailed"`
	EndDate       string `csv:"feed_end_date" json:"end_date,omitempty" groups:"detailed"`
	Version       string `csv:"feed_version" json:"version,omitempty" groups:"detailed"`
}

// Summary describes a loaded feed without any of its schedule data.
type Summary struct {
	Source   string         `json:"source" groups:"basic,detailed"`
	Agencies []Agency       `json:"agencies" groups:"basic,detailed"`
	Info     []FeedInfo     `json:"feed_info,omitempty" groups:"detailed"`
	Tables   map[string]int `json:"tables" groups:"basic,detailed"`
}

func (f *Feed) Summary() Summary {
	return Summary{
		Source:   f.Source,
		Agencies: f.Agencies,
		Info:     f.Info,
		Tables:   f.Counts(),
	}
}
