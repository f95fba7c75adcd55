package models

type Story struct {
	ID         string  `json:"_id"`
	Type       int64   `json:"type"`
	IsDisabled *bool   `json:"isDisabled,omitempty"`
	IsDeleted  *bool   `json:"isDeleted,omitempty"`
	Order      int64   `json:"order"`
	Name       *string `json:"name,omitempty"`
	Title      *string `json:"title,omitempty"`
	Subtitle   *string `json:"subtitle,omitempty"`
	Preview    Image   `json:"preview"`
	Slides     []Image `json:"slides"`
}

type Content struct {
	ID         string            `json:"_id"`
	Name       string            `json:"name"`
	Type       *string           `json:"type,omitempty"`
	Image      *string           `json:"image,omitempty"`
	URL        *string           `json:"url,omitempty"`
	Text       *string           `json:"text,omitempty"`
	Order      *int64            `json:"order,omitempty"`
	ConceptID  *string           `json:"conceptId,omitempty"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
	UISettings ContentUISettings `json:"uiSettings"`
}

type ContentUISettings struct {
	URL   *string `json:"url,omitempty"`
	Text  *string `json:"text,omitempty"`
	Color *string `json:"color,omitempty"`
}

type Notification struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Body      string `json:"body"`
	Image     *Image `json:"image,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
