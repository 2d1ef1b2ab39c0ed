package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ehpadacademy/internal/catalog"
	"ehpadacademy/internal/types"
)

var (
	loginEmail    string
	loginPassword string
	registerName  string
)

// loginCmd exchanges credentials for a persisted token.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" || loginPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.Login(cmd.Context(), loginEmail, loginPassword); err != nil {
			return err
		}
		user := store.User()
		fmt.Printf("Connecté : %s (niveau %d, %d XP)\n", user.Name, types.LevelForXP(user.XP), user.XP)
		return nil
	},
}

// registerCmd creates an account then logs in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if registerName == "" || loginEmail == "" || loginPassword == "" {
			return fmt.Errorf("--name, --email and --password are required")
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.Register(cmd.Context(), registerName, loginEmail, loginPassword); err != nil {
			return err
		}
		fmt.Printf("Compte créé. Bienvenue, %s !\n", store.User().Name)
		return nil
	},
}

// logoutCmd discards the persisted token. Purely local.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		store.Logout()
		fmt.Println("Déconnecté.")
		return nil
	},
}

// profileCmd prints the account: progression, avatar, badges.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the logged-in profile, badges and progression",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}
		user := store.User()
		if user == nil {
			return fmt.Errorf("not logged in (run 'academy login')")
		}

		level := types.LevelForXP(user.XP)
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		fmt.Printf("Niveau %d — %d XP (%d XP jusqu'au niveau %d)\n",
			level, user.XP, types.NextLevelXP(user.XP)-user.XP, level+1)

		avatars, badges := catalog.FetchProfileCatalogs(ctx, store.Client())
		for _, a := range avatars {
			if a.ID == user.Avatar {
				fmt.Printf("Avatar : %s %s\n", a.Image, a.Name)
			}
		}

		fmt.Println("\nBadges :")
		for _, b := range badges {
			mark := " "
			if user.HasBadge(b.ID) {
				mark = "✓"
			}
			fmt.Printf("  [%s] %s %s — %s\n", mark, b.Icon, b.Name, b.Description)
		}

		if len(user.CompletedThemes) > 0 {
			fmt.Println("\nThèmes validés :")
			for _, t := range user.CompletedThemes {
				fmt.Printf("  ✓ %s\n", t)
			}
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account e-mail")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&loginEmail, "email", "", "account e-mail")
	registerCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
}
