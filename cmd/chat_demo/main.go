// README: Sends one message to the configured completion provider and prints how the reply classifies.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"pedidos/internal/ai"
	"pedidos/internal/modules/order"
)

func main() {
	providerName := flag.String("provider", "openai", "openai or gemini")
	message := flag.String("m", "Quero uma pizza calabresa grande, sou o Pedro, pago no Pix, Rua Augusta 500, 11988887777", "customer message")
	flag.Parse()

	ctx := context.Background()

	var provider ai.Provider
	switch *providerName {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable not set")
		}
		p, err := ai.NewGeminiProvider(ctx, apiKey, os.Getenv("GEMINI_MODEL"), 30*time.Second)
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}
		defer p.Close()
		provider = p
	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable not set")
		}
		provider = ai.NewOpenAIProvider(apiKey, os.Getenv("OPENAI_MODEL"), os.Getenv("OPENAI_BASE_URL"), 30*time.Second)
	}

	hours, err := order.NewHours("tue-sun", 17, 24, "America/Sao_Paulo")
	if err != nil {
		log.Fatal(err)
	}
	prompt := ai.BuildSystemPrompt(ai.PromptContext{
		StoreName:   "Giulia Pizzaria",
		CurrentTime: time.Now().In(hours.Location).Format(time.RFC3339),
		Hours:       hours.Describe(),
	})

	fmt.Printf("User: %s\n", *message)
	reply, err := provider.Complete(ctx, prompt, *message)
	if err != nil {
		log.Fatalf("Error calling %s: %v", provider.Name(), err)
	}
	fmt.Printf("AI Reply: %s\n", reply)

	class := order.Classifier{SubstringFallback: true}.Classify(reply)
	fmt.Printf("Classification: %s\n", class)

	parsed, err := order.Parse(reply, class)
	if err != nil {
		fmt.Printf("Parse: %v\n", err)
		return
	}
	if parsed.Order != nil {
		o := order.NewEnricher(hours.Location, nil).Enrich(*parsed.Order)
		fmt.Printf("Order: %+v\n", o)
		fmt.Printf("Store open now: %v\n", hours.IsOpen(time.Now()))
	}
	if parsed.Address != nil {
		fmt.Printf("Address: %s\n", parsed.Address.Address)
	}
}
