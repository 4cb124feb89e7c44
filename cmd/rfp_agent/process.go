package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prasad/rfp-pilot/internal/config"
	"github.com/prasad/rfp-pilot/internal/jobs"
)

var processFile string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the RFP pipeline over a local document",
	Long:  "Run extraction, matching, strategic assessment, and pricing over a local RFP document and print the resulting quote.",
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processFile, "file", "f", "", "Path to the RFP document (required)")
	_ = processCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(processFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	ctx := context.Background()
	c := buildComponents(ctx, config.FromEnv())
	defer c.close()

	jobID := uuid.New().String()
	if err := c.jobs.Create(&jobs.Job{ID: jobID, Filename: processFile, Status: jobs.StatusQueued}); err != nil {
		return err
	}

	// Synchronous run: process in the foreground and read the result back.
	c.runner.Process(ctx, jobID, content)

	job, err := c.jobs.Get(jobID)
	if err != nil {
		return err
	}
	if job.Status == jobs.StatusFailed {
		return fmt.Errorf("processing failed: %s", job.Message)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(job.Result)
}
