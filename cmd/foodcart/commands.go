package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nikolayk812/foodcart/internal/catalog"
	"github.com/nikolayk812/foodcart/internal/checkout"
	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/review"
	"github.com/spf13/cobra"
)

// withApp builds the app for one command run and tears it down afterwards.
func withApp(cmd *cobra.Command, opts *globalOptions, fn func(a *app) error) error {
	a, err := newApp(cmd.Context(), opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	runErr := fn(a)
	closeErr := a.close(cmd.ErrOrStderr(), opts.dumpMetrics)

	return errors.Join(runErr, closeErr)
}

func catalogCmd(opts *globalOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				items := a.session.Catalog.Items()
				if category != "" {
					c, err := domain.ParseCategory(category)
					if err != nil {
						return err
					}
					items = a.session.Catalog.ByCategory(c)
				}
				return printCatalog(cmd.OutOrStdout(), items)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list one category (Pizzas, Hamburgers, Salads)")

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Write the built-in menu to the postgres catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if a.catalogs == nil {
					return fmt.Errorf("catalog seed needs catalog.source=%s", "postgres")
				}

				static, err := catalog.Default()
				if err != nil {
					return fmt.Errorf("catalog.Default: %w", err)
				}
				items, err := static.GetCatalog(cmd.Context())
				if err != nil {
					return fmt.Errorf("static.GetCatalog: %w", err)
				}

				if err := a.catalogs.SaveCatalog(cmd.Context(), items); err != nil {
					return fmt.Errorf("catalogs.SaveCatalog: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items\n", len(items))
				return nil
			})
		},
	})

	return cmd
}

func cartCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the cart",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the cart lines and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				return printCart(cmd.OutOrStdout(), a)
			})
		},
	})

	var addToppings []string
	add := &cobra.Command{
		Use:   "add FOOD_ID",
		Short: "Add a menu item with toppings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foodID, err := parseFoodID(args[0])
			if err != nil {
				return err
			}
			sels, err := parseToppings(addToppings)
			if err != nil {
				return err
			}

			return withApp(cmd, opts, func(a *app) error {
				line, err := a.session.AddToCart(cmd.Context(), foodID, sels)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s: %s (%s)\n", line.Name, line.Description, line.TotalPrice.StringFixed(2))
				return printCart(cmd.OutOrStdout(), a)
			})
		},
	}
	add.Flags().StringArrayVarP(&addToppings, "topping", "t", nil, "Topping as name=quantity, repeatable")
	cmd.AddCommand(add)

	var (
		editToppings []string
		increments   []string
		decrements   []string
	)
	edit := &cobra.Command{
		Use:   "edit FOOD_ID",
		Short: "Change the toppings of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foodID, err := parseFoodID(args[0])
			if err != nil {
				return err
			}
			sels, err := parseToppings(editToppings)
			if err != nil {
				return err
			}

			return withApp(cmd, opts, func(a *app) error {
				editor, err := a.session.EditLine(foodID)
				if err != nil {
					return err
				}

				for _, s := range sels {
					if err := editor.Set(s.Name, s.Quantity); err != nil {
						return err
					}
				}
				for _, name := range increments {
					if err := editor.Increment(name); err != nil {
						return err
					}
				}
				for _, name := range decrements {
					if err := editor.Decrement(name); err != nil {
						return err
					}
				}

				line, err := a.session.ConfirmEdit(editor)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %s (%s)\n", line.Name, line.Description, line.TotalPrice.StringFixed(2))
				return printCart(cmd.OutOrStdout(), a)
			})
		},
	}
	edit.Flags().StringArrayVarP(&editToppings, "topping", "t", nil, "Set topping quantity as name=quantity, repeatable")
	edit.Flags().StringArrayVar(&increments, "inc", nil, "Add one of the named topping, repeatable")
	edit.Flags().StringArrayVar(&decrements, "dec", nil, "Remove one of the named topping, repeatable")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove FOOD_ID",
		Short: "Remove every line of a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foodID, err := parseFoodID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, opts, func(a *app) error {
				if err := a.session.RemoveLine(foodID); err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), a)
			})
		},
	})

	return cmd
}

func checkoutCmd(opts *globalOptions) *cobra.Command {
	var (
		table    string
		delivery bool
		address  checkout.Address
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				v := a.session.Checkout
				switch {
				case cmd.Flags().Changed("dine-in"):
					v.Select(checkout.DineIn)
					v.SetTableNumber(table)
				case delivery:
					v.SetAddress(address)
					v.Select(checkout.Delivery)
				}

				order, err := a.session.PlaceOrder(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), order.Summary())
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s, total %s\n", order.ID, order.Total)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&table, "dine-in", "", "Dine in at the given table number")
	cmd.Flags().BoolVar(&delivery, "delivery", false, "Deliver to an address; empty fields come from the profile")
	cmd.Flags().StringVar(&address.StreetAddress, "street", "", "Delivery street address")
	cmd.Flags().StringVar(&address.PostalCode, "postal", "", "Delivery postal code")
	cmd.Flags().StringVar(&address.City, "city", "", "Delivery city")
	cmd.Flags().StringVar(&address.Country, "country", "", "Delivery country")
	cmd.MarkFlagsMutuallyExclusive("dine-in", "delivery")

	return cmd
}

func reviewCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Write and read food reviews",
	}

	var (
		text   string
		rating int
		image  string
		camera bool
	)
	submit := &cobra.Command{
		Use:   "submit FOOD_ID",
		Short: "Submit a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			foodID, err := parseFoodID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, opts, func(a *app) error {
				draft := review.NewDraft(foodID)
				draft.Text = text
				draft.Rating = rating

				from := review.Library
				if camera {
					from = review.Camera
				}
				if err := draft.Attach(cmd.Context(), &refMedia{ref: image}, from); err != nil {
					return err
				}

				if err := a.session.SubmitReview(cmd.Context(), draft); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Review submitted")
				return nil
			})
		},
	}
	submit.Flags().StringVar(&text, "text", "", "Review text")
	submit.Flags().IntVar(&rating, "rating", 0, "Rating from 1 to 5")
	submit.Flags().StringVar(&image, "image", "", "Image reference to attach")
	submit.Flags().BoolVar(&camera, "camera", false, "Attach the image as a camera capture")
	cmd.AddCommand(submit)

	var foodID int
	list := &cobra.Command{
		Use:   "list",
		Short: "List reviews, newest last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				a.session.Feed.Filter(foodID)
				if _, err := a.session.Feed.Reload(cmd.Context(), a.session.Catalog.Items()); err != nil {
					a.logger.Warn("showing reviews as empty", "error", err)
				}
				return printReviews(cmd.OutOrStdout(), a.session.Feed.Entries())
			})
		},
	}
	list.Flags().IntVar(&foodID, "food", 0, "Only list reviews of this food id")
	cmd.AddCommand(list)

	return cmd
}

func ratingsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ratings",
		Short: "Show the average rating of every menu item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				reviews, err := a.session.Reviews.Load(cmd.Context())
				if err != nil {
					a.logger.Warn("showing ratings without reviews", "error", err)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tREVIEWS\tRATING")
				for _, r := range review.Ratings(a.session.Catalog.Items(), reviews) {
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", r.Item.ID, r.Item.Name, r.Count, r.AverageRating.StringFixed(2))
				}
				return w.Flush()
			})
		},
	}
}

func printCatalog(out io.Writer, items []domain.CatalogItem) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tTOPPINGS")
	for _, item := range items {
		toppings := make([]string, 0, len(item.Toppings))
		for _, t := range item.Toppings {
			toppings = append(toppings, fmt.Sprintf("%s +%s", t.Name, t.UnitPrice.StringFixed(2)))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, item.BasePrice.StringFixed(2), strings.Join(toppings, ", "))
	}
	return w.Flush()
}

func printCart(out io.Writer, a *app) error {
	items := a.session.Cart.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintf(out, "Cart is empty, total %s\n", a.session.Cart.Total())
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tPRICE")
	for _, l := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.ID, l.Name, l.Description, l.TotalPrice.StringFixed(2))
	}
	fmt.Fprintf(w, "\t\tTotal\t%s\n", a.session.Cart.Total())
	return w.Flush()
}

func printReviews(out io.Writer, entries []review.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No reviews yet")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FOOD\tRATING\tTEXT\tIMAGE")
	for _, e := range entries {
		image := ""
		if e.Review.Image != nil {
			image = *e.Review.Image
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.FoodName, e.Review.Rating, e.Review.Text, image)
	}
	return w.Flush()
}

func parseFoodID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("food id[%s] is not valid", s)
	}
	return id, nil
}

// parseToppings reads name=quantity pairs. Names may contain spaces.
func parseToppings(values []string) ([]domain.ToppingSelection, error) {
	sels := make([]domain.ToppingSelection, 0, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, "=")
		if i <= 0 {
			return nil, fmt.Errorf("topping[%s] must be name=quantity", v)
		}

		q, err := strconv.Atoi(strings.TrimSpace(v[i+1:]))
		if err != nil {
			return nil, fmt.Errorf("topping[%s] quantity is not a number", v)
		}

		sels = append(sels, domain.ToppingSelection{Name: strings.TrimSpace(v[:i]), Quantity: q})
	}
	return sels, nil
}
