package tui

import (
	"fmt"
	"strconv"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// BuildScenario interviews the user in three rounds: the scenario
// shape first, then one question per product and resource field, then
// the consumption rates once the names are known.
func BuildScenario() (*entities.Scenario, error) {
	shape, err := Ask(shapeQuestions())
	if err != nil {
		return nil, err
	}

	standard, err := parseCount(shape["standard"], "standard products")
	if err != nil {
		return nil, err
	}
	premium, err := parseCount(shape["premium"], "premium products")
	if err != nil {
		return nil, err
	}
	resourceCount, err := parseCount(shape["resources"], "resources")
	if err != nil {
		return nil, err
	}
	if standard+premium == 0 {
		return nil, fmt.Errorf("scenario needs at least one product")
	}

	answers, err := Ask(fieldQuestions(standard, premium, resourceCount))
	if err != nil {
		return nil, err
	}

	products, err := parseProducts(answers, standard, premium)
	if err != nil {
		return nil, err
	}
	resources, err := parseResources(answers, resourceCount)
	if err != nil {
		return nil, err
	}
	bigM := 0.0
	if premium > 0 {
		bigM, err = parseRate(answers["big_m"], "big-M limit")
		if err != nil {
			return nil, err
		}
	}

	rates, err := Ask(consumptionQuestions(products, resources))
	if err != nil {
		return nil, err
	}
	consumption, err := parseConsumption(rates, len(resources), len(products))
	if err != nil {
		return nil, err
	}

	return entities.NewScenario(shape["name"], shape["currency"], products, resources, consumption, bigM)
}

func shapeQuestions() []Question {
	return []Question{
		{Key: "name", Prompt: "Scenario name", Default: "NEW_SCENARIO"},
		{Key: "currency", Prompt: "Currency", Default: "USD"},
		{Key: "standard", Prompt: "How many standard products", Default: "1"},
		{Key: "premium", Prompt: "How many premium products", Default: "0"},
		{Key: "resources", Prompt: "How many resources", Default: "1"},
	}
}

func fieldQuestions(standard, premium, resources int) []Question {
	var questions []Question
	for i := 0; i < standard+premium; i++ {
		kind := "standard"
		if i >= standard {
			kind = "premium"
		}
		prefix := fmt.Sprintf("product_%d_", i)
		label := fmt.Sprintf("%s product %d", kind, i+1)
		questions = append(questions,
			Question{Key: prefix + "name", Prompt: label + " name", Default: fmt.Sprintf("PRODUCT_%d", i+1)},
			Question{Key: prefix + "revenue", Prompt: label + " revenue coefficient", Default: "10"},
			Question{Key: prefix + "saturation", Prompt: label + " saturation coefficient", Default: "0.5"},
			Question{Key: prefix + "cost", Prompt: label + " variable cost", Default: "1"},
		)
		if i >= standard {
			questions = append(questions,
				Question{Key: prefix + "activation", Prompt: label + " activation cost", Default: "0"})
		}
	}
	for k := 0; k < resources; k++ {
		prefix := fmt.Sprintf("resource_%d_", k)
		label := fmt.Sprintf("resource %d", k+1)
		questions = append(questions,
			Question{Key: prefix + "name", Prompt: label + " name", Default: fmt.Sprintf("RESOURCE_%d", k+1)},
			Question{Key: prefix + "capacity", Prompt: label + " capacity", Default: "100"},
		)
	}
	if premium > 0 {
		questions = append(questions,
			Question{Key: "big_m", Prompt: "Big-M production limit for premium products", Default: "1000"})
	}
	return questions
}

func consumptionQuestions(products []entities.Product, resources []entities.Resource) []Question {
	var questions []Question
	for k, r := range resources {
		for i, p := range products {
			questions = append(questions, Question{
				Key:     fmt.Sprintf("rate_%d_%d", k, i),
				Prompt:  fmt.Sprintf("%s consumed per unit of %s", r.Name, p.Name),
				Default: "0",
			})
		}
	}
	return questions
}

func parseProducts(answers map[string]string, standard, premium int) ([]entities.Product, error) {
	products := make([]entities.Product, 0, standard+premium)
	for i := 0; i < standard+premium; i++ {
		prefix := fmt.Sprintf("product_%d_", i)
		name := answers[prefix+"name"]

		revenue, err := parseRate(answers[prefix+"revenue"], name+" revenue coefficient")
		if err != nil {
			return nil, err
		}
		saturation, err := parseRate(answers[prefix+"saturation"], name+" saturation coefficient")
		if err != nil {
			return nil, err
		}
		cost, err := parseRate(answers[prefix+"cost"], name+" variable cost")
		if err != nil {
			return nil, err
		}

		var product *entities.Product
		if i < standard {
			product, err = entities.NewStandardProduct(name, revenue, saturation, cost)
		} else {
			var activation float64
			activation, err = parseRate(answers[prefix+"activation"], name+" activation cost")
			if err != nil {
				return nil, err
			}
			product, err = entities.NewPremiumProduct(name, revenue, saturation, cost, activation)
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

func parseResources(answers map[string]string, count int) ([]entities.Resource, error) {
	resources := make([]entities.Resource, 0, count)
	for k := 0; k < count; k++ {
		prefix := fmt.Sprintf("resource_%d_", k)
		name := answers[prefix+"name"]
		capacity, err := parseRate(answers[prefix+"capacity"], name+" capacity")
		if err != nil {
			return nil, err
		}
		resource, err := entities.NewResource(name, capacity)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *resource)
	}
	return resources, nil
}

func parseConsumption(rates map[string]string, resources, products int) ([][]float64, error) {
	consumption := make([][]float64, resources)
	for k := 0; k < resources; k++ {
		consumption[k] = make([]float64, products)
		for i := 0; i < products; i++ {
			rate, err := parseRate(rates[fmt.Sprintf("rate_%d_%d", k, i)], "consumption rate")
			if err != nil {
				return nil, err
			}
			consumption[k][i] = rate
		}
	}
	return consumption, nil
}

func parseCount(answer, what string) (int, error) {
	n, err := strconv.Atoi(answer)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count of %s: %q", what, answer)
	}
	return n, nil
}

func parseRate(answer, what string) (float64, error) {
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", what, answer)
	}
	return v, nil
}
