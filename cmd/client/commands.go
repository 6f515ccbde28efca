package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"math-helper/cmd/client/articles"
	"math-helper/cmd/client/chat"
	"math-helper/cmd/client/clients/aihelperclient"
	"math-helper/cmd/client/clients/articleclient"
	"math-helper/cmd/client/session"
	"math-helper/cmd/client/ui"
)

func newChatCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "AI helper bilan suhbat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *globalOptions) error {
	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	nav := ui.NewTerminalNavigator(a.cfg.LoginURL())
	conv := chat.New(
		aihelperclient.New(a.cfg.APIBaseURL, a.httpClient),
		a.store,
		chat.Options{Timeout: a.cfg.RequestTimeout, LoginPath: a.cfg.LoginPath, Navigator: nav},
	)

	model := ui.NewChatModel(cmd.Context(), conv, ui.DefaultStyles())
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run chat view: %w", err)
	}

	nav.PrintHint(cmd.OutOrStdout())
	return nil
}

func newArticlesCmd(opts *globalOptions) *cobra.Command {
	var plain bool
	c := &cobra.Command{
		Use:   "articles",
		Short: "Maqolalar ro‘yxati",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			extractor, err := articles.NewTextExtractor(a.cfg.Articles.TextExtractor)
			if err != nil {
				return err
			}
			listing := articles.NewListing(
				articleclient.New(a.cfg.APIBaseURL, a.httpClient),
				articles.Options{
					PreviewLength:  a.cfg.Articles.PreviewLength,
					WordsPerMinute: a.cfg.Articles.WordsPerMinute,
					PDFReadMinutes: a.cfg.Articles.PDFReadMinutes,
					Extractor:      extractor,
					Timeout:        a.cfg.RequestTimeout,
				},
			)

			if plain {
				if err := listing.Load(cmd.Context()); err != nil {
					return err
				}
				return ui.WriteCardsPlain(cmd.OutOrStdout(), listing.Cards())
			}

			p := tea.NewProgram(ui.NewArticlesModel(cmd.Context(), listing, ui.DefaultStyles()),
				tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run articles view: %w", err)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&plain, "plain", false, "print the list as plain text instead of the interactive view")
	return c
}

func newLoginCmd(opts *globalOptions) *cobra.Command {
	var token string
	c := &cobra.Command{
		Use:   "login",
		Short: "Access tokenni saqlash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("--token is required")
			}
			return withStore(cmd.Context(), opts, func(ctx context.Context, store session.Store) error {
				if err := store.Set(ctx, session.CredentialKey, token); err != nil {
					return fmt.Errorf("save token: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Token saqlandi.")
				return nil
			})
		},
	}
	c.Flags().StringVar(&token, "token", "", "access token issued by the web login")
	return c
}

func newLogoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Saqlangan tokenni o‘chirish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(ctx context.Context, store session.Store) error {
				if err := store.Delete(ctx, session.CredentialKey); err != nil {
					return fmt.Errorf("delete token: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Tizimdan chiqildi.")
				return nil
			})
		},
	}
}

func newWhoamiCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Token saqlanganini tekshirish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), opts, func(ctx context.Context, store session.Store) error {
				token, err := store.Get(ctx, session.CredentialKey)
				switch {
				case errors.Is(err, session.ErrNotFound) || (err == nil && strings.TrimSpace(token) == ""):
					fmt.Fprintln(cmd.OutOrStdout(), "Login qilinmagan.")
					return nil
				case err != nil:
					return fmt.Errorf("read token: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Login qilingan (token %s).\n", maskToken(token))
				return nil
			})
		},
	}
}

func withStore(ctx context.Context, opts *globalOptions, fn func(ctx context.Context, store session.Store) error) error {
	a, err := setup(opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a.store)
}

// maskToken 은 토큰의 앞 4글자만 남긴다.
func maskToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", min(len(token)-4, 8))
}
