package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarzydan610/JetStay-sub001/services"
	"github.com/omarzydan610/JetStay-sub001/validate"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if !validate.Email(email) {
				return formError(validate.Errors{"email": "Please enter a valid email address"})
			}
			if _, err := a.client.Login(cmd.Context(), services.Credentials{Email: email, Password: password}); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session token",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			claims, err := a.client.Session()
			if err != nil {
				return err
			}
			if a.jsonOut {
				return printJSON(a.out, claims)
			}
			rows := [][]string{
				{"Email", claims.Email()},
				{"User", fmt.Sprint(claims.UserID)},
			}
			if claims.HotelID != 0 {
				rows = append(rows, []string{"Hotel", fmt.Sprint(claims.HotelID)})
			}
			if claims.AirlineID != 0 {
				rows = append(rows, []string{"Airline", fmt.Sprint(claims.AirlineID)})
			}
			if claims.ExpiresAt != nil {
				rows = append(rows, []string{"Expires", claims.ExpiresAt.Time.Local().Format(time.RFC1123)})
			}
			return table(a.out, []string{"FIELD", "VALUE"}, rows)
		},
	}
}

func (a *app) signupCmd() *cobra.Command {
	var form validate.SignupForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a traveller account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Email = strings.TrimSpace(form.Email)
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			if errs := form.Validate(); !errs.OK() {
				return formError(errs)
			}
			env, err := a.client.Signup(cmd.Context(), services.NewSignupRequest(form))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, message(env, "Account created, you can now log in"))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.FirstName, "first-name", "", "first name")
	f.StringVar(&form.LastName, "last-name", "", "last name")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Password, "password", "", "password")
	f.StringVar(&form.ConfirmPassword, "confirm-password", "", "password again (defaults to --password)")
	f.StringVar(&form.PhoneNumber, "phone", "", "10 digit Egyptian mobile number")
	return cmd
}

func (a *app) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Recover or change a password",
	}

	var email, otp, token, newPassword string

	forgot := &cobra.Command{
		Use:   "forgot",
		Short: "Email a one time password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := a.client.ForgotPassword(cmd.Context(), strings.TrimSpace(email))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, message(env, "Check your inbox for the code"))
			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Trade the emailed code for a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validate.OTP(otp) {
				return formError(validate.Errors{"otp": "Enter the 6 digit code"})
			}
			resetToken, err := a.client.VerifyOTP(cmd.Context(), strings.TrimSpace(email), otp)
			if err != nil {
				return err
			}
			if resetToken == "" {
				return errors.New("the server did not return a reset token")
			}
			fmt.Fprintln(a.out, resetToken)
			return nil
		},
	}
	verify.Flags().StringVar(&otp, "otp", "", "6 digit code from the email")

	withToken := func(use, short, done string, call func(*cobra.Command) (*services.Envelope, error)) *cobra.Command {
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if !validate.Password(newPassword) {
					return formError(validate.Errors{"newPassword": "Password must be at least 8 characters and contain uppercase, lowercase, and number"})
				}
				env, err := call(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, message(env, done))
				return nil
			},
		}
		c.Flags().StringVar(&token, "token", "", "reset token from 'password verify'")
		c.Flags().StringVar(&newPassword, "new-password", "", "the new password")
		_ = c.MarkFlagRequired("token")
		return c
	}
	reset := withToken("reset", "Set a new password with a reset token", "Password reset",
		func(cmd *cobra.Command) (*services.Envelope, error) {
			return a.client.ResetPassword(cmd.Context(), strings.TrimSpace(email), token, newPassword)
		})
	change := withToken("change", "Change the password with a reset token", "Password changed",
		func(cmd *cobra.Command) (*services.Envelope, error) {
			return a.client.ChangePassword(cmd.Context(), strings.TrimSpace(email), token, newPassword)
		})

	cmd.PersistentFlags().StringVarP(&email, "email", "e", "", "account email")
	_ = cmd.MarkPersistentFlagRequired("email")
	cmd.AddCommand(forgot, verify, reset, change)
	return cmd
}

// message is the server's message, or fallback when it sent none.
func message(env *services.Envelope, fallback string) string {
	if env != nil && env.Message != "" {
		return env.Message
	}
	return fallback
}
