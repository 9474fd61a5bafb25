package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pastforward-labs/pastforward/internal/post"
	"github.com/pastforward-labs/pastforward/internal/store"
)

var (
	listPlatform string
	listEra      string
	listLimit    int
	listPublic   bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List saved posts",
	Long: `List posts saved to the local library, newest first.

Examples:
  pastforward posts
  pastforward posts --platform reddit --limit 5
  pastforward posts share 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  pastforward posts delete 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	RunE: runPosts,
}

var shareCmd = &cobra.Command{
	Use:   "share [id]",
	Short: "Make a saved post publicly visible",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

var unshareCmd = &cobra.Command{
	Use:   "unshare [id]",
	Short: "Make a saved post private again",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnshare,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved post",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(shareCmd, unshareCmd, deleteCmd)

	postsCmd.Flags().StringVar(&listPlatform, "platform", "", "Only show posts for one platform")
	postsCmd.Flags().StringVar(&listEra, "era", "", "Only show posts for one era")
	postsCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of posts to show")
	postsCmd.Flags().BoolVar(&listPublic, "public", false, "Only show shared posts")
}

func runPosts(cmd *cobra.Command, args []string) error {
	filter := store.ListFilter{
		Era:        listEra,
		Limit:      listLimit,
		PublicOnly: listPublic,
	}
	if listPlatform != "" {
		platform, err := post.ParsePlatform(listPlatform)
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		filter.Platform = platform
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	posts, err := st.List(context.Background(), filter)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Println(metaStyle.Render("No saved posts."))
		return nil
	}

	for _, sp := range posts {
		visibility := "private"
		if sp.Public {
			visibility = "public"
		}
		fmt.Println()
		fmt.Println(metaStyle.Render(fmt.Sprintf("%s · %s · %s · %s",
			sp.ID, sp.Era, visibility, sp.CreatedAt.Format("2006-01-02 15:04"))))
		fmt.Println(renderPost(sp.Post))
	}
	fmt.Println()

	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	return setVisibility(args[0], true)
}

func runUnshare(cmd *cobra.Command, args []string) error {
	return setVisibility(args[0], false)
}

func setVisibility(id string, public bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SetPublic(context.Background(), id, public); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%s post %s not found", errorStyle.Render("Error:"), id)
		}
		return err
	}

	state := "private"
	if public {
		state = "public"
	}
	fmt.Println(counterStyle.Render(fmt.Sprintf("✓ Post %s is now %s", id, state)))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(context.Background(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%s post %s not found", errorStyle.Render("Error:"), id)
		}
		return err
	}

	fmt.Println(counterStyle.Render("✓ Post " + id + " deleted"))
	return nil
}
