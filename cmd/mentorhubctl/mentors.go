package main

import (
	"context"
	"fmt"

	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var mentorsCmd = &cobra.Command{
	Use:   "mentors",
	Short: "Mentor maintenance",
}

var mentorsRecountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute companies_assigned for every mentor",
	Long: `Sets each mentor's companies_assigned to the number of companies in
the mentor's group. Mentors without a group get zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
			n, err := mentorstore.New(db).RecountAll(ctx)
			if err != nil {
				return err
			}
			logger.Info("mentors recounted", zap.Int("updated", n))
			fmt.Fprintf(cmd.OutOrStdout(), "%d mentor(s) updated\n", n)
			return nil
		})
	},
}

func init() {
	mentorsCmd.AddCommand(mentorsRecountCmd)
}
