package agent

import (
	"context"
	"fmt"

	"github.com/mlep/folio"
	"github.com/mlep/folio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// StoreLoader loads the user's store. The cmd package provides one bound
// to the -store flag, so the assistant always reads the same file as the
// other commands.
type StoreLoader func() (*folio.Store, error)

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand how their portfolio is allocated across
			categories, how far it drifted from their model portfolio, and what trades would
			bring it back. Check the portfolio first so you know their categories and symbols.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the market analyst expert. It grounds its answers
// with Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a market analyst,
		very well aware of financial products and institutions and of
		the latest news about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google
			Search to ground your assertions, and you know how to relate the latest
			news to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert in charge of reading the user's store.
// It answers with the same reports the CLI commands print.
func NewBookkeeper(load StoreLoader) *Expert {
	lib := []Function{
		allocationFunc(load),
		rebalanceFunc(load),
		modelsFunc(load),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. They are in charge of reading the user's store:
		categories, accounts, positions, prices and model portfolios.
		They can report the current allocation, the deviation from a model
		and the suggested rebalancing trades.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's investment store.
				You know how to use the Tools to extract relevant information about the
				user's allocation and model portfolios. You are part of a team of experts;
				they might ask you questions with approximative wording, figure out what
				they meant.

				Use the available tools to report
				  - the list of model portfolios and their targets
				  - the current allocation per category
				  - the rebalancing suggestions against a model
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function over a declaration and a callback.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// modelArg reads the optional "model" argument.
func modelArg(args map[string]any) (string, error) {
	v, ok := args["model"]
	if !ok {
		return "", nil
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument 'model' is not a string as expected but %T", v)
	}
	return name, nil
}

var modelSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The name of a model portfolio defined in the store.",
}

func allocationFunc(load StoreLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Allocation",
			Description: `Allocation reports the portfolio value split across categories.
			With a model name it also reports each category's target and deviation.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"model": modelSchema,
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of categories with their value and share of the portfolio.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, err := modelArg(args)
			if err != nil {
				return errResponse(id, "Allocation", err)
			}
			s, err := load()
			if err != nil {
				return errResponse(id, "Allocation", err)
			}
			return okResponse(id, "Allocation", renderer.AllocationMarkdown(folio.NewSnapshot(s, name)))
		},
	}
}

func rebalanceFunc(load StoreLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Rebalance",
			Description: `Rebalance reports the whole-share sells and buys that would bring
			the allocation back to the model's targets.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"model": modelSchema,
				},
				Required: []string{"model"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of suggested trades, sells before buys.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, err := modelArg(args)
			if err != nil {
				return errResponse(id, "Rebalance", err)
			}
			s, err := load()
			if err != nil {
				return errResponse(id, "Rebalance", err)
			}
			snap := folio.NewSnapshot(s, name)
			if snap.Model == "" {
				return errResponse(id, "Rebalance", fmt.Errorf("unknown model %q", name))
			}
			return okResponse(id, "Rebalance", renderer.SuggestionsMarkdown(snap))
		},
	}
}

func modelsFunc(load StoreLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Models",
			Description: `Models lists the defined model portfolios and their target allocations.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table per model with its stocks and targets.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load()
			if err != nil {
				return errResponse(id, "Models", err)
			}
			return okResponse(id, "Models", renderer.ModelsMarkdown(s.Models()))
		},
	}
}
