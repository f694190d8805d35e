// Package types provides the receipt value types and the parse/validation
// step that turns raw JSON into them.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/msundar/receipt-processor/internal/schemas"
)

// ErrInvalidReceipt is the single externally observable validation failure.
// Every parse or validation error wraps it; callers map it to one uniform
// 400 response without caring which check failed.
var ErrInvalidReceipt = errors.New("the receipt is invalid")

// Item is one line entry on a receipt.
type Item struct {
	// ShortDescription is stored trimmed; the raw value is pattern-checked
	// before trimming.
	ShortDescription string
	Price            string
}

// TimeOfDay is a civil time of day with no timezone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// SecondOfDay returns the number of seconds since midnight.
func (t TimeOfDay) SecondOfDay() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.SecondOfDay() > other.SecondOfDay()
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.SecondOfDay() < other.SecondOfDay()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Receipt is a validated purchase document. It is constructed once per
// request by ParseReceipt and immutable afterwards; only its computed score
// and fingerprint outlive the request.
type Receipt struct {
	Retailer     string
	PurchaseDate time.Time
	PurchaseTime TimeOfDay
	Items        []Item
	Total        string
}

// receiptWire mirrors the JSON request body. Schema validation runs first,
// so by the time this decodes every field is a pattern-conforming string.
type receiptWire struct {
	Retailer     string     `json:"retailer"`
	PurchaseDate string     `json:"purchaseDate"`
	PurchaseTime string     `json:"purchaseTime"`
	Items        []itemWire `json:"items"`
	Total        string     `json:"total"`
}

type itemWire struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

// ParseReceipt validates a raw JSON document and builds a Receipt from it.
// Shape errors (missing fields, unknown fields, pattern mismatches, empty
// items) and semantic errors (impossible dates, out-of-range or
// offset-aware times) all wrap ErrInvalidReceipt.
func ParseReceipt(document []byte) (*Receipt, error) {
	if err := schemas.ValidateReceipt(document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.DisallowUnknownFields()
	var wire receiptWire
	if err := decoder.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}

	purchaseDate, err := time.Parse(time.DateOnly, wire.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: purchaseDate: %v", ErrInvalidReceipt, err)
	}

	purchaseTime, err := ParseTimeOfDay(wire.PurchaseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: purchaseTime: %v", ErrInvalidReceipt, err)
	}

	receipt := &Receipt{
		Retailer:     wire.Retailer,
		PurchaseDate: purchaseDate,
		PurchaseTime: purchaseTime,
		Total:        wire.Total,
		Items:        make([]Item, 0, len(wire.Items)),
	}
	for _, item := range wire.Items {
		receipt.Items = append(receipt.Items, Item{
			ShortDescription: strings.TrimSpace(item.ShortDescription),
			Price:            item.Price,
		})
	}
	return receipt, nil
}

// ParseTimeOfDay parses a 24-hour "HH:MM" or "HH:MM:SS" string. Timezone
// offsets are rejected outright: purchase times are offset-naive.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if strings.ContainsAny(value, "Zz+-") {
		return TimeOfDay{}, errors.New("timezone offsets are not permitted")
	}

	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("malformed time %q", value)
	}

	var fields [3]int
	for i, part := range parts {
		if len(part) != 2 {
			return TimeOfDay{}, fmt.Errorf("malformed time %q", value)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("malformed time %q", value)
		}
		fields[i] = n
	}

	t := TimeOfDay{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", value)
	}
	return t, nil
}

// CanonicalMap returns the receipt's normalized wire form for fingerprinting:
// trimmed descriptions and canonical date/time strings, so two semantically
// identical submissions produce the same digest regardless of how the
// original JSON was keyed or spaced.
func (r *Receipt) CanonicalMap() map[string]any {
	items := make([]any, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, map[string]any{
			"shortDescription": item.ShortDescription,
			"price":            item.Price,
		})
	}
	return map[string]any{
		"retailer":     r.Retailer,
		"purchaseDate": r.PurchaseDate.Format(time.DateOnly),
		"purchaseTime": r.PurchaseTime.String(),
		"items":        items,
		"total":        r.Total,
	}
}
