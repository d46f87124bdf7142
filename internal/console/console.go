// Package console implements the interactive text menu over a Pantry.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/guttosm/food-storage/internal/service"
	"github.com/shopspring/decimal"
)

type menuItem struct {
	label  string
	action func() error
}

// Console runs the menu loop. Domain errors raised by an action are printed
// and the loop continues; input errors end it.
type Console struct {
	pantry service.Pantry
	in     *Prompter
	out    io.Writer
	styles styles
	items  []menuItem
}

// New creates a Console reading commands from r and writing to w.
func New(pantry service.Pantry, r io.Reader, w io.Writer) *Console {
	c := &Console{
		pantry: pantry,
		in:     NewPrompter(r, w, pantry.Today),
		out:    w,
		styles: newStyles(w),
	}
	c.items = []menuItem{
		{"Add an ingredient", c.addIngredient},
		{"Consume an ingredient", c.consumeIngredient},
		{"Print all ingredients", c.printInventory},
		{"Search for ingredients", c.searchIngredients},
		{"Print expired ingredients", c.printExpired},
		{"Print total value of ingredients", c.printTotalValue},
		{"Add a recipe", c.addRecipe},
		{"Print all recipes", c.printRecipes},
		{"Check if a recipe can be prepared", c.checkRecipe},
		{"Suggest recipes", c.suggestRecipes},
		{"Prepare a recipe", c.prepareRecipe},
	}
	return c
}

// Run shows the menu until the user exits or the input ends.
func (c *Console) Run() error {
	c.println(c.styles.title.Render("Food Saver"))
	c.println("Welcome to the food saver app!")

	for {
		c.printMenu()
		choice, err := c.in.ReadInt("Choose which action to perform")
		if err != nil {
			return endOfInput(err)
		}
		if choice == 0 {
			c.println("Goodbye!")
			return nil
		}
		if choice < 0 || choice > len(c.items) {
			c.fail("Invalid action. Please try again.")
			continue
		}

		if err := c.items[choice-1].action(); err != nil {
			if model.ReasonOf(err) == "" {
				return endOfInput(err)
			}
			c.fail(err.Error())
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) printMenu() {
	c.println("")
	c.println(c.styles.heading.Render("Menu"))
	for i, item := range c.items {
		c.println(fmt.Sprintf("%2d. %s", i+1, item.label))
	}
	c.println(fmt.Sprintf("%2d. %s", 0, "Exit"))
}

func (c *Console) addIngredient() error {
	name, err := c.in.ReadString("Ingredient name")
	if err != nil {
		return err
	}
	unit, err := c.in.ReadString("Ingredient unit")
	if err != nil {
		return err
	}
	amount, err := c.in.ReadNonNegativeFloat("Ingredient amount")
	if err != nil {
		return err
	}
	price, err := c.in.ReadNonNegativeFloat("Ingredient price")
	if err != nil {
		return err
	}
	expires, err := c.in.ReadDate("Ingredient expiration date")
	if err != nil {
		return err
	}

	lot, err := model.NewIngredient(name, amount, unit, decimal.NewFromFloat(price), expires, c.pantry.Today())
	if err != nil {
		return err
	}
	if err := c.pantry.AddIngredient(lot); err != nil {
		return err
	}
	c.succeed("Ingredient added successfully.")
	return nil
}

func (c *Console) consumeIngredient() error {
	name, err := c.in.ReadString("Ingredient name")
	if err != nil {
		return err
	}
	amount, err := c.in.ReadFloat("Amount to consume")
	if err != nil {
		return err
	}
	if err := c.pantry.ConsumeIngredient(name, amount); err != nil {
		return err
	}
	c.succeed("Ingredient consumed successfully.")
	return nil
}

func (c *Console) printInventory() error {
	c.println(c.pantry.InventoryReport())
	return nil
}

func (c *Console) searchIngredients() error {
	keyword, err := c.in.ReadString("Ingredient name")
	if err != nil {
		return err
	}
	lots := c.pantry.SearchIngredients(keyword)
	if len(lots) == 0 {
		c.println("No ingredients found.")
		return nil
	}
	c.println(fmt.Sprintf("Found %d %s:", len(lots), plural(len(lots), "ingredient")))
	c.printLots(lots)
	return nil
}

func (c *Console) printExpired() error {
	lots := c.pantry.ExpiredIngredients()
	if len(lots) == 0 {
		c.println("No expired ingredients found.")
		return nil
	}
	c.println(fmt.Sprintf("Found %d %s that are expired:", len(lots), plural(len(lots), "ingredient")))
	c.printLots(lots)
	return nil
}

func (c *Console) printTotalValue() error {
	if len(c.pantry.Ingredients()) == 0 {
		c.println("No ingredients in storage.")
		return nil
	}
	c.println("Total value of ingredients: " + c.pantry.TotalValue().StringFixed(2))
	return nil
}

func (c *Console) addRecipe() error {
	name, err := c.in.ReadString("Recipe name")
	if err != nil {
		return err
	}
	description, err := c.in.ReadString("Recipe description")
	if err != nil {
		return err
	}
	instructions, err := c.in.ReadString("Recipe instructions")
	if err != nil {
		return err
	}
	servings, err := c.in.ReadPositiveInt("Number of servings")
	if err != nil {
		return err
	}
	recipe, err := model.NewRecipe(name, description, instructions, servings)
	if err != nil {
		return err
	}

	c.println(c.styles.muted.Render("Type 'yes' to add an ingredient or 'done' to finish."))
	for {
		answer, err := c.in.ReadString("Add ingredient? (yes/done)")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "done":
			if len(recipe.Ingredients()) == 0 {
				c.fail("Recipe must have at least one ingredient.")
				return nil
			}
			if err := c.pantry.AddRecipe(recipe); err != nil {
				return err
			}
			c.succeed("Recipe added successfully!")
			return nil
		case "yes":
			if err := c.addRecipeLine(recipe); err != nil {
				if model.ReasonOf(err) == "" {
					return err
				}
				c.fail(err.Error())
			}
		default:
			c.fail("Invalid input. Please type 'yes' to add an ingredient or 'done' to finish.")
		}
	}
}

func (c *Console) addRecipeLine(recipe *model.Recipe) error {
	name, err := c.in.ReadString("Ingredient name")
	if err != nil {
		return err
	}
	unit, err := c.in.ReadString("Ingredient unit")
	if err != nil {
		return err
	}
	amount, err := c.in.ReadNonNegativeFloat("Ingredient amount")
	if err != nil {
		return err
	}
	line, err := model.NewRequirement(name, amount, unit, c.pantry.Today())
	if err != nil {
		return err
	}
	if err := recipe.AddIngredient(line); err != nil {
		return err
	}
	c.succeed("Ingredient added to the recipe.")
	return nil
}

func (c *Console) printRecipes() error {
	recipes := c.pantry.AllRecipes()
	if len(recipes) == 0 {
		c.println("No recipes to display.")
		return nil
	}
	c.println(c.styles.heading.Render("Recipe List"))
	for i, recipe := range recipes {
		c.println(fmt.Sprintf("\nRecipe #%d:", i+1))
		c.println(strings.TrimRight(recipe.String(), "\n"))
	}
	return nil
}

func (c *Console) checkRecipe() error {
	name, err := c.in.ReadString("Recipe name")
	if err != nil {
		return err
	}
	ok, err := c.pantry.CanPrepareRecipeByName(name)
	if err != nil {
		return err
	}
	if ok {
		c.succeed("You can prepare the recipe!")
	} else {
		c.println("You cannot prepare the recipe.")
	}
	return nil
}

func (c *Console) suggestRecipes() error {
	recipes := c.pantry.SuggestRecipes()
	if len(recipes) == 0 {
		c.println("No recipes can be made with the ingredients in the food storage.")
		return nil
	}
	c.println(c.styles.heading.Render("Suggested recipes:"))
	for _, recipe := range recipes {
		c.println("- " + recipe.Name())
	}
	return nil
}

func (c *Console) prepareRecipe() error {
	name, err := c.in.ReadString("Recipe name")
	if err != nil {
		return err
	}
	if err := c.pantry.PrepareRecipeByName(name); err != nil {
		return err
	}
	c.succeed("Recipe prepared. The ingredients were taken from storage.")
	return nil
}

func (c *Console) printLots(lots []*model.Ingredient) {
	for _, lot := range lots {
		c.println(lot.PrettyPrint())
		c.println("")
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) succeed(msg string) {
	c.println(c.styles.success.Render(msg))
}

func (c *Console) fail(msg string) {
	c.println(c.styles.err.Render(msg))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
