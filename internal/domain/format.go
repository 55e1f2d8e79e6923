package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	prettyExtension = "txt"

	sectionMarker = "<echeance"
	cdataOpen     = "![CDATA["
	cdataClose    = "]]"
)

// Render turns a raw report into the content to persist. In raw mode the body
// is passed through untouched; in pretty mode it is reduced to plain text.
func Render(r Report, pretty bool) (Rendition, error) {
	if !pretty {
		return Rendition{
			Kind:      r.Kind,
			Content:   r.Body,
			Extension: r.Kind.RawExtension(),
		}, nil
	}

	var (
		text string
		err  error
	)
	switch r.Kind {
	case KindBMR:
		text, err = PrettyBMR(string(r.Body))
	case KindBMS:
		text, err = PrettyBMS(r.Body)
	default:
		return Rendition{}, fmt.Errorf("render: unknown report kind %q", r.Kind)
	}
	if err != nil {
		return Rendition{}, err
	}

	return Rendition{
		Kind:      r.Kind,
		Content:   []byte(text),
		Extension: prettyExtension,
		Pretty:    true,
	}, nil
}

// PrettyBMR keeps the CDATA text of every forecast period of a BMR document.
// A preamble before the first "<echeance" is dropped when it holds no CDATA.
func PrettyBMR(doc string) (string, error) {
	sections := strings.Split(doc, sectionMarker)
	out := make([]string, 0, len(sections))

	for i, section := range sections {
		blocks, err := extractCDATA(section)
		if err != nil {
			return "", fmt.Errorf("section %d: %w", i, err)
		}
		if i == 0 && len(blocks) == 0 {
			continue
		}
		out = append(out, strings.Join(blocks, "\n"))
	}

	return strings.Join(out, "\n\n"), nil
}

// extractCDATA returns the content of each CDATA block in order.
func extractCDATA(section string) ([]string, error) {
	parts := strings.Split(section, cdataOpen)
	if len(parts) < 2 {
		return nil, nil
	}

	blocks := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		content, _, found := strings.Cut(part, cdataClose)
		if !found {
			return nil, fmt.Errorf("%w: unterminated CDATA block", ErrMalformedContent)
		}
		blocks = append(blocks, content)
	}
	return blocks, nil
}

// BMS JSON view. Pointers distinguish an absent field from an empty one.

type bmsDocument struct {
	ReportTitle  *string       `json:"report_title"`
	TextBlocItem []bmsTextBloc `json:"text_bloc_item"`
}

type bmsTextBloc struct {
	BlocTitle *string        `json:"bloc_title"`
	TextItems *[]bmsTextItem `json:"text_items"`
}

type bmsTextItem struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

// PrettyBMS renders a BMS JSON document as:
//
//	<report_title>
//
//	<text_bloc_item[0].text_items[*].title, one per line>
//
//
//	<TEXT_BLOC_ITEM[1].BLOC_TITLE>
//
//	<text_bloc_item[1].text_items[*].text, one per line>
func PrettyBMS(body []byte) (string, error) {
	var doc bmsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("%w: decode BMS: %w", ErrMalformedContent, err)
	}

	if doc.ReportTitle == nil {
		return "", malformed("report_title")
	}
	if len(doc.TextBlocItem) < 2 {
		return "", fmt.Errorf("%w: text_bloc_item needs 2 entries, got %d", ErrMalformedContent, len(doc.TextBlocItem))
	}

	headlines, err := collectItems(doc.TextBlocItem[0], "text_bloc_item[0]", func(it bmsTextItem) *string { return it.Title })
	if err != nil {
		return "", err
	}

	detail := doc.TextBlocItem[1]
	if detail.BlocTitle == nil {
		return "", malformed("text_bloc_item[1].bloc_title")
	}
	texts, err := collectItems(detail, "text_bloc_item[1]", func(it bmsTextItem) *string { return it.Text })
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(*doc.ReportTitle)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(headlines, "\n"))
	b.WriteString("\n\n\n")
	b.WriteString(strings.ToUpper(*detail.BlocTitle))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(texts, "\n"))
	b.WriteString("\n\n")
	return b.String(), nil
}

func collectItems(bloc bmsTextBloc, path string, field func(bmsTextItem) *string) ([]string, error) {
	if bloc.TextItems == nil {
		return nil, malformed(path + ".text_items")
	}
	out := make([]string, 0, len(*bloc.TextItems))
	for i, item := range *bloc.TextItems {
		v := field(item)
		if v == nil {
			return nil, malformed(fmt.Sprintf("%s.text_items[%d]", path, i))
		}
		out = append(out, *v)
	}
	return out, nil
}

func malformed(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedContent, field)
}
