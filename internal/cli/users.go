package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/rollcall/internal/app"
	"github.com/five82/rollcall/internal/record"
	"github.com/five82/rollcall/internal/view"
)

// sortFields maps the --sort flag to record paths.
var sortFields = map[string]string{
	"name":         view.FieldName,
	"email":        view.FieldEmail,
	"city":         view.FieldCity,
	"address.city": view.FieldCity,
}

type userRow struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	City  string `json:"city" yaml:"city"`
}

type userListing struct {
	Search    string    `json:"search,omitempty" yaml:"search,omitempty"`
	Sort      string    `json:"sort" yaml:"sort"`
	Direction string    `json:"direction" yaml:"direction"`
	Page      int       `json:"page" yaml:"page"`
	Pages     int       `json:"pages" yaml:"pages"`
	PageSize  int       `json:"page_size" yaml:"page_size"`
	Total     int       `json:"total" yaml:"total"`
	Users     []userRow `json:"users" yaml:"users"`
}

type usersOptions struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
	output   string
}

func newUsersCommand(flags *globalFlags) *cobra.Command {
	opts := usersOptions{}

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Print one page of the user list",
		Long: `Fetches the user collection once and prints a single page after search,
sort and pagination. Requires a session (see rollcall login).`,
		Example: `  rollcall users --search le
  rollcall users --sort city --desc --page 2
  rollcall users -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Open(flags.options())
			if err != nil {
				return err
			}
			defer env.Close()

			if !cmd.Flags().Changed("page-size") {
				opts.pageSize = env.Prefs.PageSize
			}
			s, err := opts.state()
			if err != nil {
				return err
			}

			if _, err := env.RequireSession(cmd.Context()); err != nil {
				return err
			}

			res, used, err := app.LoadView(cmd.Context(), env.Users, s)
			if err != nil {
				return err
			}
			return writeListing(cmd.OutOrStdout(), opts.output, newListing(res, used))
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&opts.sort, "sort", "name", "sort column (name, email, city)")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", view.PageSizes[0], "rows per page ("+pageSizeList()+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}

// state validates the flags and turns them into a view state.
func (o usersOptions) state() (view.State, error) {
	s := view.DefaultState()

	field, ok := sortFields[strings.ToLower(strings.TrimSpace(o.sort))]
	if !ok {
		return s, fmt.Errorf("unsupported sort column: %s (use name, email or city)", o.sort)
	}
	if !view.IsAllowedPageSize(o.pageSize) {
		return s, fmt.Errorf("unsupported page size: %d (use %s)", o.pageSize, pageSizeList())
	}
	if o.page < 1 {
		return s, fmt.Errorf("page must be 1 or greater, got %d", o.page)
	}
	switch o.output {
	case "text", "json", "yaml":
	default:
		return s, fmt.Errorf("unsupported format: %s (use text, json or yaml)", o.output)
	}

	s = s.WithSearch(strings.TrimSpace(o.search))
	s = s.WithPageSize(o.pageSize)
	s.SortField = field
	if o.desc {
		s.Direction = view.Descending
	}
	s.Page = o.page - 1
	return s, nil
}

func pageSizeList() string {
	parts := make([]string, len(view.PageSizes))
	for i, n := range view.PageSizes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func newListing(res view.Result, s view.State) userListing {
	sortName := "name"
	for name, field := range sortFields {
		if field == s.SortField && !strings.Contains(name, ".") {
			sortName = name
		}
	}

	listing := userListing{
		Search:    s.Search,
		Sort:      sortName,
		Direction: s.Direction.String(),
		Page:      s.Page + 1,
		Pages:     res.DisplayPages(),
		PageSize:  s.PageSize,
		Total:     res.Total,
		Users:     make([]userRow, 0, len(res.Rows)),
	}
	for _, r := range res.Rows {
		listing.Users = append(listing.Users, toRow(r))
	}
	return listing
}

func toRow(r record.Record) userRow {
	return userRow{
		ID:    r.Key(),
		Name:  r.String(view.FieldName),
		Email: r.String(view.FieldEmail),
		City:  r.String(view.FieldCity),
	}
}

func writeListing(w io.Writer, format string, listing userListing) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal users to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(listing)
		if err != nil {
			return fmt.Errorf("marshal users to YAML: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	default:
		return writeListingText(w, listing)
	}
}

func writeListingText(w io.Writer, listing userListing) error {
	if len(listing.Users) == 0 {
		if listing.Search != "" {
			_, err := fmt.Fprintf(w, "No users match %q\n", listing.Search)
			return err
		}
		_, err := fmt.Fprintln(w, "No users")
		return err
	}

	rows := make([][]string, len(listing.Users))
	for i, u := range listing.Users {
		rows[i] = []string{u.Name, u.Email, u.City}
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Email", "City").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	noun := "users"
	if listing.Total == 1 {
		noun = "user"
	}
	_, err := fmt.Fprintf(w, "%s\npage %d/%d · %d %s · sorted by %s %s\n",
		t.String(), listing.Page, listing.Pages, listing.Total, noun, listing.Sort, listing.Direction)
	return err
}
