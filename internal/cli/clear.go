package cli

import "fmt"

type ClearCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !c.Force {
		ok, err := confirm("This will delete every day annotation. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Clear cancelled.")
			return nil
		}
	}

	if err := ctx.Store.ClearAll(); err != nil {
		return err
	}

	fmt.Println("All annotations cleared.")
	return nil
}
