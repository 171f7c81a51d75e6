package meetingapi

// Documents served by the static content API. The producing scraper
// owns the schema; fields the client does not touch are left out and
// absent fields decode to their zero value.

type Index struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Endpoints   map[string]string `json:"endpoints"`
}

type WeekSummary struct {
	Id            string `json:"id"`
	Year          int    `json:"year"`
	WeekNumber    int    `json:"weekNumber"`
	WeekStartDate string `json:"weekStartDate"`
	WeekOf        string `json:"weekOf"`
}

type ListMeta struct {
	TotalWeeks  int    `json:"totalWeeks"`
	LastUpdated string `json:"lastUpdated"`
}

type WeekList struct {
	Weeks []WeekSummary `json:"weeks"`
	Meta  ListMeta      `json:"meta"`
}

type WeekDocument struct {
	Id       string    `json:"id"`
	WeekOf   string    `json:"weekOf"`
	Meetings []Meeting `json:"meetings"`
}

type Meeting struct {
	Type      string    `json:"type"`
	Materials Materials `json:"materials"`
}

type Materials struct {
	Videos []Material `json:"videos"`
	Images []Material `json:"images"`
	Audio  []Material `json:"audio"`
	Songs  []Material `json:"songs"`
}

// Bucket returns the material list named by materialType. Unknown
// types yield an empty bucket, not an error.
func (m Materials) Bucket(materialType string) []Material {
	switch materialType {
	case "videos":
		return m.Videos
	case "images":
		return m.Images
	case "audio":
		return m.Audio
	case "songs":
		return m.Songs
	}
	return nil
}

type Material struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Url         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
	Duration    int    `json:"duration"`
}

type StatsOverview struct {
	TotalWeeks     int `json:"totalWeeks"`
	TotalMeetings  int `json:"totalMeetings"`
	TotalMaterials int `json:"totalMaterials"`
	TotalDuration  int `json:"totalDuration"`
}

type Stats struct {
	Overview       StatsOverview  `json:"overview"`
	ByMaterialType map[string]int `json:"byMaterialType"`
	GeneratedAt    string         `json:"generatedAt"`
}

// WeekMaterial is a material enriched with the context of the week
// and meeting it came from. The server document is embedded untouched.
type WeekMaterial struct {
	Material
	WeekId      string `json:"weekId"`
	MeetingType string `json:"meetingType"`
	WeekOf      string `json:"weekOf"`
}

// SkippedWeek records a week that could not be fetched during a
// full-corpus scan.
type SkippedWeek struct {
	WeekId string
	Err    error
}

type MaterialShare struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type EnhancedStats struct {
	TotalWeeksAnalyzed    int                      `json:"totalWeeksAnalyzed"`
	AvgMeetingsPerWeek    float64                  `json:"avgMeetingsPerWeek"`
	AvgDurationPerMeeting float64                  `json:"avgDurationPerMeeting"`
	MaterialDistribution  map[string]MaterialShare `json:"materialDistribution"`
}

// MeetingStatistics is the raw stats document plus a derived section.
// None of the server fields are rewritten.
type MeetingStatistics struct {
	Stats
	Enhanced EnhancedStats `json:"enhanced"`
}
