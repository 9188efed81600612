package remote

// Wire shapes of the upstream video API. Field names follow the upstream
// JSON exactly; nextPageUrl is an opaque token handed back verbatim via
// FetchFeed.

type FeedResponse struct {
	ItemList    []FeedItem `json:"itemList"`
	Count       int        `json:"count"`
	Total       int        `json:"total"`
	NextPageURL string     `json:"nextPageUrl"`
}

// FeedItem wraps an optional video payload; sponsor/tag entries carry no
// Data and are filtered out before the cache layer.
type FeedItem struct {
	Type    string    `json:"type"`
	Data    *VideoDTO `json:"data"`
	Tag     string    `json:"tag"`
	ID      int64     `json:"id"`
	AdIndex int       `json:"adIndex"`
}

type SearchResponse struct {
	ItemList    []VideoDTO `json:"itemList"`
	Count       int        `json:"count"`
	Total       int        `json:"total"`
	NextPageURL string     `json:"nextPageUrl"`
}

type CategoryListResponse struct {
	ItemList    []CategoryDTO `json:"itemList"`
	Count       int           `json:"count"`
	Total       int           `json:"total"`
	NextPageURL string        `json:"nextPageUrl"`
}

type VideoDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	PlayURL     string         `json:"playUrl"`
	Cover       CoverDTO       `json:"cover"`
	Duration    int            `json:"duration"`
	Category    string         `json:"category"`
	Author      AuthorDTO      `json:"author"`
	Consumption ConsumptionDTO `json:"consumption"`
	ReleaseTime int64          `json:"releaseTime"`
}

type CoverDTO struct {
	Feed    string `json:"feed"`
	Detail  string `json:"detail"`
	Blurred string `json:"blurred"`
}

type AuthorDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type ConsumptionDTO struct {
	CollectionCount int64 `json:"collectionCount"`
	ShareCount      int64 `json:"shareCount"`
	ReplyCount      int64 `json:"replyCount"`
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BgPicture   string `json:"bgPicture"`
	BgColor     string `json:"bgColor"`
	VideoCount  int    `json:"videoCount"`
}

// Videos returns the video payloads of a feed page, dropping non-video
// entries.
func (f *FeedResponse) Videos() []VideoDTO {
	out := make([]VideoDTO, 0, len(f.ItemList))
	for _, it := range f.ItemList {
		if it.Data != nil {
			out = append(out, *it.Data)
		}
	}
	return out
}
