package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const ticketContentType = "text/html; charset=utf-8"

// RenderTicketDocument renders a printable HTML ticket.
func RenderTicketDocument(ticket Ticket) ([]byte, error) {
	rows := [][2]string{
		{"Ticket ID", ticket.ID},
		{"Passenger Name", ticket.Name},
		{"Age", strconv.Itoa(ticket.Age)},
		{"Gender", string(ticket.Gender)},
		{"From", ticket.Source},
		{"To", ticket.Destination},
	}
	if ticket.TravelDate != nil {
		rows = append(rows, [2]string{"Travel Date", longDate(*ticket.TravelDate)})
	}
	rows = append(rows, [2]string{"Booking Time", ticket.BookingTime.Format(bookingTimeLayout)})

	table := element(atom.Table, "class", "ticket")
	for _, row := range rows {
		tr := element(atom.Tr, "data-field", fieldKey(row[0]))
		tr.AppendChild(withText(element(atom.Th), row[0]))
		tr.AppendChild(withText(element(atom.Td), row[1]))
		table.AppendChild(tr)
	}

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), "Railway Ticket "+ticket.ID))

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), "RAILWAY TICKET"))
	body.AppendChild(table)
	body.AppendChild(withText(element(atom.P, "class", "footer"), "Thank you for choosing our Railway Service!"))

	root := element(atom.Html, "lang", "en")
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render ticket %s: %w", ticket.ID, err)
	}
	return buf.Bytes(), nil
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func fieldKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// attachDocument puts the ticket document on the reply of this turn.
func (d *Dialog) attachDocument(t *turn, ticket Ticket) bool {
	data, err := RenderTicketDocument(ticket)
	if err != nil {
		d.logger.Error("Error: rendering ticket document", "id", ticket.ID, "err", err)
		return false
	}
	t.doc = &Document{
		Filename:    fmt.Sprintf("ticket_%s.html", ticket.ID),
		ContentType: ticketContentType,
		Data:        data,
	}
	return true
}

// ---- reading documents back ----

// ticketFields extracts the label/value rows of a rendered ticket, keyed by
// their data-field attribute.
func ticketFields(doc *html.Node) map[string]string {
	fields := make(map[string]string)
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			key, ok := getAttributeValue(n, "data-field")
			if td := findChildWithTag(n, "td", ""); ok && td != nil {
				fields[key] = getTextContent(td)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return fields
}

// getTextContent extracts the text content of an HTML node and its children.
func getTextContent(n *html.Node) string {
	var text string
	if n.Type == html.TextNode {
		text += n.Data
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text += getTextContent(c)
	}
	return strings.TrimSpace(text)
}

// getAttributeValue retrieves the value of a specific attribute from an HTML node.
func getAttributeValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// findChildWithTag finds the first child of a node with a specific tag.
func findChildWithTag(n *html.Node, tag, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			if class == "" {
				return c
			}
			if val, ok := getAttributeValue(c, "class"); ok && strings.Contains(val, class) {
				return c
			}
		}
	}
	return nil
}
