package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
)

func init() {
	jobsCmd.AddCommand(listJobsCmd)
	jobsCmd.AddCommand(getJobCmd)

	listJobsCmd.Flags().IntP("limit", "l", models.DefaultLimit, "Limit the number of jobs returned")
	listJobsCmd.Flags().StringP("status", "s", "", "Filter jobs by status")
	listJobsCmd.Flags().StringP("city", "c", "", "Filter jobs by city")

	getJobCmd.Flags().UintP("id", "i", 0, "Job ID to fetch")
	_ = getJobCmd.MarkFlagRequired("id")
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect jobs",
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		statusStr, _ := cmd.Flags().GetString("status")
		city, _ := cmd.Flags().GetString("city")

		filter := repos.JobFilter{City: city}
		if statusStr != "" {
			status, err := models.ParseJobStatus(statusStr)
			if err != nil {
				return err
			}
			filter.Status = status
		}

		jobs, err := repos.NewJobRepository(database).
			List(context.Background(), filter, &models.ListOptions{Limit: limit})
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}

		return printJSON(jobs)
	},
}

var getJobCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a job by ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint("id")

		job, err := repos.NewJobRepository(database).GetByID(context.Background(), id)
		if err != nil {
			return err
		}

		return printJSON(job)
	},
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
