package main

import (
	"fmt"
	"strconv"
	"strings"

	"learnpath_backend/internal/service"
	"learnpath_backend/pkg/client"

	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Create and follow learning roadmaps",
}

var roadmapCreateCmd = &cobra.Command{
	Use:   "create <course title>",
	Short: "Generate a roadmap for a course",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		roadmap, err := s.GenerateRoadmap(cmd.Context(), service.GenerateRoadmapRequest{
			CourseTitle: strings.Join(args, " "),
		})
		if err != nil {
			return err
		}
		return render(cmd, roadmap)
	},
}

var roadmapListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your roadmaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		roadmaps, err := s.Roadmaps(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, roadmaps)
	},
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show <roadmap id>",
	Short: "Show a roadmap with its modules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := session(cmd)
		if err != nil {
			return err
		}
		roadmap, err := s.Roadmap(cmd.Context(), id)
		if err != nil {
			return err
		}
		return render(cmd, roadmap)
	},
}

var roadmapCompleteCmd = &cobra.Command{
	Use:   "complete <roadmap id> [module id] [topic]",
	Short: "Mark a topic complete (the next unfinished one when omitted)",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		roadmapID, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := session(cmd)
		if err != nil {
			return err
		}
		roadmap, err := s.Roadmap(cmd.Context(), roadmapID)
		if err != nil {
			return err
		}
		cursor := client.NewRoadmapCursor(roadmap)

		var moduleID uint
		var topic string
		switch len(args) {
		case 1:
			m, next, ok := cursor.NextIncomplete()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Every topic is already complete")
				return nil
			}
			moduleID, topic = m.ID, next
		default:
			if moduleID, err = parseID(args[1]); err != nil {
				return err
			}
			if err := cursor.Select(moduleID); err != nil {
				return err
			}
			if len(args) == 3 {
				topic = args[2]
			} else if next, ok := cursor.NextTopic(); ok {
				topic = next
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Every topic in this module is already complete")
				return nil
			}
		}

		result, err := s.CompleteTopic(cmd.Context(), roadmapID, moduleID, topic)
		if err != nil {
			return err
		}
		return render(cmd, result)
	},
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func init() {
	roadmapCmd.AddCommand(roadmapCreateCmd, roadmapListCmd, roadmapShowCmd, roadmapCompleteCmd)
}
