package chat

import (
	"fmt"
	"strings"
)

const historyLimit = 10

const instructions = `Você é o assistente virtual do cardápio digital de um restaurante.
Responda sempre em português, de forma curta e simpática.
Use apenas as informações do restaurante abaixo: pratos, preços, complementos e categorias.
Se não souber a resposta, diga que o cliente pode chamar o garçom ou falar com o restaurante pelo WhatsApp.
Nunca invente pratos ou preços.`

// BuildPrompt assembles the text sent to the model. Only the last ten
// history turns are included.
func BuildPrompt(restaurantJSON string, history []Turn, message string) string {
	var b strings.Builder

	b.WriteString(instructions)
	b.WriteString("\n\nDADOS DO RESTAURANTE:\n")
	b.WriteString(restaurantJSON)
	b.WriteString("\n")

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	if len(history) > 0 {
		b.WriteString("\nCONVERSA ATÉ AGORA:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "%s: %s\n", t.speaker(), strings.TrimSpace(t.Content))
		}
	}

	fmt.Fprintf(&b, "\nCliente: %s\nAssistente:", strings.TrimSpace(message))
	return b.String()
}
