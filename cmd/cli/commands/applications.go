package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
)

func init() {
	applicationsCmd.AddCommand(listApplicationsCmd)

	listApplicationsCmd.Flags().UintP("job-id", "j", 0, "Job ID to list applications for")
	listApplicationsCmd.Flags().IntP("limit", "l", models.DefaultLimit, "Limit the number of applications returned")
	listApplicationsCmd.Flags().Bool("include-deleted", false, "Include withdrawn applications")
	_ = listApplicationsCmd.MarkFlagRequired("job-id")
}

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Inspect applications",
}

var listApplicationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the applications for a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("job-id")
		limit, _ := cmd.Flags().GetInt("limit")
		includeDeleted, _ := cmd.Flags().GetBool("include-deleted")

		apps, err := repos.NewApplicationRepository(database).
			ListByJob(context.Background(), jobID, &models.ListOptions{
				Limit:          limit,
				IncludeDeleted: includeDeleted,
			})
		if err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}

		return printJSON(apps)
	},
}
