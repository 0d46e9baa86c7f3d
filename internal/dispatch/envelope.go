package dispatch

import "encoding/json"

// ContentTypeText is the only content type the adapter produces.
const ContentTypeText = "text"

// Content is one item of a response envelope.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the success envelope.
type Response struct {
	Content []Content `json:"content"`
}

// Text returns the text of the sole content item.
func (r *Response) Text() string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}

// textResponse serializes records as indented JSON. A nil slice is encoded as [].
func textResponse[T any](records []T) (*Response, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return &Response{Content: []Content{{Type: ContentTypeText, Text: string(data)}}}, nil
}
