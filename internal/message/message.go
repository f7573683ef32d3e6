// Package message renders the canonical order summary. Field order and
// the 2-decimal currency formatting are a contract the messaging handoff
// depends on; changing either is a breaking change.
package message

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Reissam/cardapio-virtual/internal/cart"
	"github.com/Reissam/cardapio-virtual/internal/order"
	"github.com/Reissam/cardapio-virtual/internal/payment"
)

var ErrMalformedLine = errors.New("malformed summary line")

// FormatEntry renders one cart entry as
// "<qty>x <name>[ (<size>)][ - flavor, flavor] - <amount>"
// with the amount fixed to two decimal places.
func FormatEntry(e cart.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx %s", e.Quantity, e.Name)
	if e.Size != "" {
		fmt.Fprintf(&b, " (%s)", e.Size)
	}
	if len(e.Flavors) > 0 {
		b.WriteString(" - ")
		b.WriteString(strings.Join(e.Flavors, ", "))
	}
	b.WriteString(" - ")
	b.WriteString(e.LineTotal().StringFixed(2))
	return b.String()
}

// MethodLabel renders the payment method for the summary
func MethodLabel(s payment.Submission) string {
	switch s.Method {
	case payment.MethodCard:
		return "Cartão na entrega"
	case payment.MethodCash:
		return fmt.Sprintf("Dinheiro (troco para %s)", s.ChangeFor.StringFixed(2))
	case payment.MethodPix:
		return "Pix"
	}
	return s.Method.String()
}

// Summary composes the full order message: items, total, payment method,
// address, phone and, when present, the observation.
func Summary(o *order.Order) string {
	lines := make([]string, 0, len(o.Entries))
	for _, e := range o.Entries {
		lines = append(lines, FormatEntry(e))
	}

	var b strings.Builder
	b.WriteString("🍕 *PEDIDO SABOR DA TERRA* 🍕\n\n")
	b.WriteString("📋 *ITENS:*\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s*\n\n", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "💳 *PAGAMENTO:* %s\n\n", MethodLabel(o.Submission))
	fmt.Fprintf(&b, "📍 *ENTREGA:* %s\n", o.Submission.Address)
	fmt.Fprintf(&b, "📞 *TELEFONE:* %s\n", o.Submission.Phone)
	if o.Submission.Observation != "" {
		fmt.Fprintf(&b, "📝 *OBS:* %s\n", o.Submission.Observation)
	}
	b.WriteString("\n✅ Pedido confirmado!")
	return b.String()
}

// HandoffURL builds the messaging handoff link: the summary body
// percent-encoded into a wa.me URL for the configured destination number.
func HandoffURL(number, body string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(body), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}

// ParsedEntry is the result of reading a summary line back
type ParsedEntry struct {
	Quantity  int
	Name      string
	Size      string
	Flavors   []string
	LineTotal decimal.Decimal
}

var headPattern = regexp.MustCompile(`^(\d+)x (.+)$`)

// ParseEntryLine reads a line produced by FormatEntry back into its
// parts. A trailing parenthesized token on the head segment is taken as
// the size.
func ParseEntryLine(line string) (ParsedEntry, error) {
	parts := strings.Split(line, " - ")
	if len(parts) < 2 || len(parts) > 3 {
		return ParsedEntry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	head := headPattern.FindStringSubmatch(parts[0])
	if head == nil {
		return ParsedEntry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	quantity, err := strconv.Atoi(head[1])
	if err != nil || quantity < 1 {
		return ParsedEntry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	name := head[2]
	size := ""
	if open := strings.LastIndex(name, " ("); open >= 0 && strings.HasSuffix(name, ")") {
		size = name[open+2 : len(name)-1]
		name = name[:open]
	}

	total, err := decimal.NewFromString(parts[len(parts)-1])
	if err != nil {
		return ParsedEntry{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	parsed := ParsedEntry{
		Quantity:  quantity,
		Name:      name,
		Size:      size,
		LineTotal: total,
	}
	if len(parts) == 3 {
		parsed.Flavors = strings.Split(parts[1], ", ")
	}
	return parsed, nil
}
