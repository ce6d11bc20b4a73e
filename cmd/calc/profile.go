package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"calculators/internal/common/validation"
	validateprofile "calculators/internal/engines/insurance/validate-profile"
	"calculators/internal/models"
)

const dateLayout = "2006-01-02"

// profileDocument is the JSON shape of a profile file; the date of birth is a
// plain YYYY-MM-DD string.
type profileDocument struct {
	UserID        string         `json:"userId"`
	Title         string         `json:"title"`
	FirstName     string         `json:"firstName"`
	Surname       string         `json:"surname"`
	Phone         string         `json:"phone"`
	DateOfBirth   string         `json:"dateOfBirth"`
	LicenseType   string         `json:"licenseType"`
	LicensePeriod int            `json:"licensePeriod"`
	Occupation    string         `json:"occupation"`
	Address       models.Address `json:"address"`
	DriverHistory string         `json:"driverHistory,omitempty"`
}

// readProfile checks the file against the registered schema before decoding it.
func (a *app) readProfile(path string, stdin io.Reader) (*models.BrokerProfile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profile file is not JSON: %w", err)
	}
	if err := a.registry.ValidateInput(validateprofile.TaskType, raw); err != nil {
		return nil, err
	}

	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	dob, err := time.Parse(dateLayout, doc.DateOfBirth)
	if err != nil {
		return nil, validation.NewError("Date of birth must be a valid date (YYYY-MM-DD)")
	}

	return &models.BrokerProfile{
		UserID:        doc.UserID,
		Title:         doc.Title,
		FirstName:     doc.FirstName,
		Surname:       doc.Surname,
		Phone:         doc.Phone,
		DateOfBirth:   dob,
		LicenseType:   doc.LicenseType,
		LicensePeriod: doc.LicensePeriod,
		Occupation:    doc.Occupation,
		Address:       doc.Address,
		DriverHistory: doc.DriverHistory,
	}, nil
}

func newProfileCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Validate and manage broker profiles",
	}

	var file string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check a profile file against every profile rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.readProfile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out, err := c.app.validator.Execute(cmd.Context(), &validateprofile.Input{Profile: p})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Valid {
				fmt.Fprintln(w, "Profile is valid")
				return nil
			}
			for i, msg := range out.Errors {
				fmt.Fprintf(w, "%d. %s\n", i+1, msg)
			}
			return fmt.Errorf("profile has %d validation error(s)", len(out.Errors))
		},
	}
	validate.Flags().StringVarP(&file, "file", "f", "-", "profile JSON file, - for stdin")

	var saveFile string
	var update bool
	save := &cobra.Command{
		Use:   "save",
		Short: "Validate and store a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.readProfile(saveFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			var ok bool
			if update {
				ok, err = c.app.profiles.UpdateProfile(cmd.Context(), p)
			} else {
				ok, err = c.app.profiles.CreateProfile(cmd.Context(), p)
			}
			if err != nil {
				return err
			}
			if !ok {
				if update {
					return fmt.Errorf("no profile for user %q", p.UserID)
				}
				return fmt.Errorf("profile for user %q already exists", p.UserID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s\n", p.UserID)
			return nil
		},
	}
	save.Flags().StringVarP(&saveFile, "file", "f", "-", "profile JSON file, - for stdin")
	save.Flags().BoolVar(&update, "update", false, "replace an existing profile instead of creating one")

	view := &cobra.Command{
		Use:   "view <user-id>",
		Short: "Show a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.profiles.ViewProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			text, err := c.app.renderer.RenderProfile(p)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Remove a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := c.app.profiles.DeleteProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no profile for user %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", args[0])
			return nil
		},
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.profiles.ProfileCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}

	cmd.AddCommand(validate, save, view, del, count)
	return cmd
}
