package toniecloud

// Household is an account-level grouping that owns Creative Tonies.
// Immutable snapshot as reported by the service; identity is ID.
type Household struct {
	ID                          string `json:"id"`
	Name                        string `json:"name"`
	Image                       string `json:"image"`
	ForeignCreativeTonieContent bool   `json:"foreignCreativeTonieContent"`
	Access                      string `json:"access"`
	CanLeave                    bool   `json:"canLeave"`
	OwnerName                   string `json:"ownerName"`
}

// CreativeTonie is a cloud-backed audio playlist container tied to a
// household. Chapters is ordered: the order is playback order and is the
// list submitted wholesale when the figurine is rewritten.
type CreativeTonie struct {
	ID                string             `json:"id"`
	HouseholdID       string             `json:"householdId"`
	Name              string             `json:"name"`
	Live              bool               `json:"live"`
	Private           bool               `json:"private"`
	ImageURL          string             `json:"imageUrl"`
	TranscodingErrors []TranscodingError `json:"transcodingErrors"`
	SecondsRemaining  float64            `json:"secondsRemaining"`
	SecondsPresent    float64            `json:"secondsPresent"`
	ChaptersRemaining int                `json:"chaptersRemaining"`
	ChaptersPresent   int                `json:"chaptersPresent"`
	Transcoding       bool               `json:"transcoding"`
	Chapters          []Chapter          `json:"chapters"`
}

// Chapter is one audio track within a figurine's playlist. Chapters compare
// by full field equality; removal relies on that to take out exactly one
// occurrence.
type Chapter struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	File        string  `json:"file"`
	Seconds     float64 `json:"seconds"`
	Transcoding bool    `json:"transcoding"`
}

// TranscodingError reports a server-side transcode failure on a figurine.
type TranscodingError struct {
	Reason          string           `json:"reason"`
	DeletedChapters []DeletedChapter `json:"deletedChapters"`
}

// DeletedChapter identifies a chapter the service dropped while transcoding.
type DeletedChapter struct {
	Title   string  `json:"title"`
	Seconds float64 `json:"seconds"`
}

// UploadSlot is a one-time, time-limited handle authorizing a direct upload
// to blob storage. Consume it immediately; the service does not hand out
// replacements for an expired slot.
type UploadSlot struct {
	FileID    string
	UploadURL string
	Fields    map[string]string
}

// AddChapterRequest registers an uploaded blob as a chapter on a figurine.
type AddChapterRequest struct {
	Title  string `json:"title"`
	File   string `json:"file"`
	Origin string `json:"origin"`
}

type fileUploadResponse struct {
	FileID  string `json:"fileId"`
	Request struct {
		URL    string            `json:"url"`
		Fields map[string]string `json:"fields"`
	} `json:"request"`
}
