package main

import (
	"fmt"

	"learnpath_backend/internal/model"
	"learnpath_backend/internal/service"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}

		req := service.SignupRequest{}
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Age, _ = cmd.Flags().GetInt("age")
		education, _ := cmd.Flags().GetString("education")
		req.EducationLevel = model.EducationLevel(education)
		req.CurrentKnowledge, _ = cmd.Flags().GetString("knowledge")

		resp, err := s.Signup(cmd.Context(), req)
		if err != nil {
			return err
		}
		return render(cmd, resp)
	},
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and keep the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		resp, err := s.Signin(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		return render(cmd, resp)
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		if err := s.Signout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the signed-in user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		user, err := s.Me(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, user)
	},
}

func init() {
	signupCmd.Flags().String("username", "", "Username")
	signupCmd.Flags().String("password", "", "Password (6-72 characters)")
	signupCmd.Flags().String("email", "", "Email address")
	signupCmd.Flags().Int("age", 0, "Age (5-100)")
	signupCmd.Flags().String("education", "", "primary, middle, high, undergraduate, graduate or other")
	signupCmd.Flags().String("knowledge", "", "What you already know")
	for _, f := range []string{"username", "password", "email", "knowledge"} {
		_ = signupCmd.MarkFlagRequired(f)
	}

	signinCmd.Flags().String("username", "", "Username")
	signinCmd.Flags().String("password", "", "Password")
	_ = signinCmd.MarkFlagRequired("username")
	_ = signinCmd.MarkFlagRequired("password")
}
