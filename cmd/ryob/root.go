package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "ryob",
		Short: "ryob discussion forum",
		Long: `ryob is a small server-rendered discussion forum.

Users register with a name and password, start topics and reply with posts.
Settings are read from environment variables such as DATABASE_URL,
HTTP_ADDR and COOKIE_SECRET.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd(), newUsersCmd())
	return root
}
