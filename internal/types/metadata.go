package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// UnknownSentinel is shown in place of counts the extractor did not report.
const UnknownSentinel = "N/A"

// Count is a counter that may be unknown. Raw holds the source text for
// unknown counts and for numbers that are not whole and non-negative, so both
// pass through unchanged.
type Count struct {
	Value int64
	Known bool
	Raw   string
}

func KnownCount(n int64) Count { return Count{Value: n, Known: true} }

func UnknownCount(raw string) Count { return Count{Raw: raw} }

func (c Count) String() string {
	if c.Known {
		if c.Raw != "" {
			return c.Raw
		}
		return strconv.FormatInt(c.Value, 10)
	}
	if c.Raw == "" {
		return UnknownSentinel
	}
	return c.Raw
}

// Float is the numeric value of a known count, including any fraction.
func (c Count) Float() float64 {
	if c.Raw != "" {
		if f, err := strconv.ParseFloat(c.Raw, 64); err == nil {
			return f
		}
	}
	return float64(c.Value)
}

func (c Count) MarshalJSON() ([]byte, error) {
	if c.Known {
		if c.Raw != "" {
			return []byte(c.Raw), nil
		}
		return []byte(strconv.FormatInt(c.Value, 10)), nil
	}
	if c.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Raw)
}

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*c = Count{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = UnknownCount(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("count %s: %w", b, err)
	}
	*c = KnownCount(int64(f))
	if f < 0 || f != math.Trunc(f) {
		c.Raw = string(b)
	}
	return nil
}

// VideoMetadata is what the extractor reports about a video. Keys the
// analyzer does not model are kept in Extra and written back out verbatim.
type VideoMetadata struct {
	ID          string
	Title       string
	Uploader    string
	Duration    float64
	ViewCount   Count
	LikeCount   Count
	UploadDate  string
	Description string
	URL         string
	Thumbnail   string

	Extra map[string]any
}

type metadataJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"`
	ViewCount   Count   `json:"view_count"`
	LikeCount   Count   `json:"like_count"`
	UploadDate  string  `json:"upload_date"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
}

var metadataKeys = map[string]bool{
	"id": true, "title": true, "uploader": true, "duration": true,
	"view_count": true, "like_count": true, "upload_date": true,
	"description": true, "url": true, "thumbnail": true,
}

func (m VideoMetadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(metadataJSON{
		ID:          m.ID,
		Title:       m.Title,
		Uploader:    m.Uploader,
		Duration:    m.Duration,
		ViewCount:   m.ViewCount,
		LikeCount:   m.LikeCount,
		UploadDate:  m.UploadDate,
		Description: m.Description,
		URL:         m.URL,
		Thumbnail:   m.Thumbnail,
	}); err != nil {
		return nil, err
	}
	base := bytes.TrimRight(buf.Bytes(), "\n")
	if len(m.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		if !metadataKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := bytes.NewBuffer(base[:len(base)-1])
	for _, k := range keys {
		kb, _ := json.Marshal(k)
		var vb bytes.Buffer
		venc := json.NewEncoder(&vb)
		venc.SetEscapeHTML(false)
		if err := venc.Encode(m.Extra[k]); err != nil {
			return nil, fmt.Errorf("metadata field %q: %w", k, err)
		}
		out.WriteByte(',')
		out.Write(kb)
		out.WriteByte(':')
		out.Write(bytes.TrimRight(vb.Bytes(), "\n"))
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

func (m *VideoMetadata) UnmarshalJSON(b []byte) error {
	var known metadataJSON
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*m = VideoMetadata{
		ID:          known.ID,
		Title:       known.Title,
		Uploader:    known.Uploader,
		Duration:    known.Duration,
		ViewCount:   known.ViewCount,
		LikeCount:   known.LikeCount,
		UploadDate:  known.UploadDate,
		Description: known.Description,
		URL:         known.URL,
		Thumbnail:   known.Thumbnail,
	}
	for k, v := range raw {
		if metadataKeys[k] {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("metadata field %q: %w", k, err)
		}
		if m.Extra == nil {
			m.Extra = make(map[string]any)
		}
		m.Extra[k] = val
	}
	return nil
}
