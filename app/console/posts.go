package main

import (
	"github.com/spf13/cobra"
	"strings"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "은혜 나눔 게시판",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.PostList(cmd.Context())
	},
}

var postsWriteCmd = &cobra.Command{
	Use:   "write [content...]",
	Short: "Publish a post; without content the saved draft is published",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.PostWrite(cmd.Context(), strings.Join(args, " "))
	},
}

var postsLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Answer a post with amen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.PostLike(cmd.Context(), id)
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a post (administrator)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return app.PostDelete(cmd.Context(), id)
	},
}

func init() {
	postsCmd.AddCommand(postsListCmd, postsWriteCmd, postsLikeCmd, postsDeleteCmd)
}
