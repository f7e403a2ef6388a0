package cart

import (
	"fmt"
	"net/url"
	"strings"
)

// encodeURIComponent leaves these unescaped; QueryEscape does not.
var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

const quoteTemplate = "Olá!\n\nGostaria de solicitar um orçamento para os seguintes itens:\n\n%s\n\nObrigado!"

// QuoteLines renders one "<quantity>x <name>" line per item.
func QuoteLines(items []LineItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(lines, "\n")
}

// QuoteMessage wraps the item lines in the budget request greeting.
func QuoteMessage(items []LineItem) string {
	return fmt.Sprintf(quoteTemplate, QuoteLines(items))
}

// QuoteURL builds the chat deep link, e.g. https://wa.me/5561999999999?text=...
// The text is encoded the way browsers' encodeURIComponent does it, so spaces
// become %20 rather than '+'.
func QuoteURL(baseURL, phone, message string) string {
	text := componentUnescaper.Replace(url.QueryEscape(message))
	return strings.TrimRight(baseURL, "/") + "/" + phone + "?text=" + text
}
