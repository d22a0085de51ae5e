package lineitem

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// segment is one parsed item before it receives an ID.
type segment struct {
	name        string
	quantity    int
	unitPrice   decimal.Decimal
	paid        decimal.Decimal
	hasQuantity bool
	recovered   bool
}

// Encode serializes items as name*quantity*unitPrice*paid joined by "|".
func Encode(items []LineItem) string {
	parts := make([]string, len(items))

	for i, item := range items {
		parts[i] = strings.Join([]string{
			item.Name,
			strconv.Itoa(item.Quantity),
			formatDecimal(item.UnitPrice),
			formatDecimal(item.Paid),
		}, fieldSeparator)
	}

	return strings.Join(parts, itemSeparator)
}

// Decode parses the products field. It never fails: missing or unparseable
// tokens fall back to quantity 1, price 0 and paid 0, and the Status records
// whether that happened.
func Decode(src Source) (res Result) {
	switch src.kind {
	case KindAbsent:
		return Result{Status: StatusAbsent}
	case KindUnsupported:
		return Result{Status: StatusMalformed}
	}

	if strings.TrimSpace(src.text) == "" {
		return Result{Status: StatusAbsent}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: StatusMalformed}
		}
	}()

	segments := parseSegments(src.text)
	if len(segments) == 0 {
		return Result{Status: StatusMalformed}
	}

	prefix := strconv.FormatInt(time.Now().UnixNano(), 36)
	res = Result{Items: make([]LineItem, len(segments)), Status: StatusOK}

	for i, seg := range segments {
		res.Items[i] = LineItem{
			ID:        fmt.Sprintf("%s-%d", prefix, i),
			Name:      seg.name,
			Quantity:  seg.quantity,
			UnitPrice: seg.unitPrice,
			Paid:      seg.paid,
		}

		if seg.recovered {
			res.Status = StatusMalformed
		}
	}

	return res
}

// FormatForDisplay renders the products field as a short human-readable list.
// Text without any delimiter is a legacy free-form value and is returned as is.
// Segments without a name are left out.
func FormatForDisplay(src Source) string {
	text := src.String()
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if !strings.ContainsAny(text, itemSeparator+fieldSeparator) {
		return text
	}

	segments := parseSegments(text)
	parts := make([]string, 0, len(segments))

	for _, seg := range segments {
		if seg.name == "" {
			continue
		}

		if seg.hasQuantity {
			parts = append(parts, fmt.Sprintf("%s (%d dona)", seg.name, seg.quantity))
			continue
		}

		parts = append(parts, seg.name)
	}

	return strings.Join(parts, ", ")
}

func parseSegments(text string) []segment {
	var segments []segment

	for _, raw := range strings.Split(text, itemSeparator) {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		fields := strings.Split(raw, fieldSeparator)
		seg := segment{
			name:      strings.TrimSpace(fields[0]),
			quantity:  1,
			unitPrice: decimal.Zero,
			paid:      decimal.Zero,
		}

		if tok, ok := token(fields, 1); ok {
			seg.hasQuantity = true

			q, ok := parseQuantity(tok)
			seg.quantity = q
			seg.recovered = seg.recovered || !ok
		}

		if tok, ok := token(fields, 2); ok {
			d, ok := parseAmount(tok)
			seg.unitPrice = d
			seg.recovered = seg.recovered || !ok
		}

		if tok, ok := token(fields, 3); ok {
			d, ok := parseAmount(tok)
			seg.paid = d
			seg.recovered = seg.recovered || !ok
		}

		segments = append(segments, seg)
	}

	return segments
}

// token returns the trimmed field at idx, or false when it is missing or blank.
func token(fields []string, idx int) (string, bool) {
	if idx >= len(fields) {
		return "", false
	}

	tok := strings.TrimSpace(fields[idx])

	return tok, tok != ""
}

// parseQuantity accepts whole numbers. Decimal tokens truncate and count as
// recovered. Anything below 1 or beyond the int range falls back to 1.
func parseQuantity(tok string) (int, bool) {
	if n, err := strconv.Atoi(tok); err == nil {
		if n < 1 {
			return 1, false
		}

		return n, true
	}

	d, err := decimal.NewFromString(tok)
	if err != nil {
		return 1, false
	}

	d = d.Truncate(0)
	if d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(math.MaxInt)) {
		return 1, false
	}

	return int(d.IntPart()), false
}

func parseAmount(tok string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(tok)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}

	return d, true
}

// formatDecimal keeps the scale of d so "2.50" encodes back to "2.50".
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}

	return d.String()
}
