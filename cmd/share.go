package cmd

import (
	"context"

	"github.com/emrgen/mapshare/internal/cloud"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	shareCmd.AddCommand(createShareCmd())
	shareCmd.AddCommand(ingestShareCmd())
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "share commands",
}

func createShareCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:     "create",
		Short:   "share a document with other participants",
		Example: "mapshare share create -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"doc-id"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			doc, err := client.Documents.GetDocument(context.Background(), docID)
			if err != nil {
				logrus.Error(err)
				return
			}

			share, err := client.Sync.Share(context.Background(), doc)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("share created with record id: %s", share.RecordID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func ingestShareCmd() *cobra.Command {
	var url string

	command := &cobra.Command{
		Use:     "ingest",
		Short:   "accept a share invitation url",
		Example: "mapshare share ingest -u <url>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"url"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			docID, err := client.Resolver.Ingest(context.Background(), cloud.ShareReference{URL: url})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("share resolved to document: %s", docID)
		},
	}

	command.Flags().StringVarP(&url, "url", "u", "", "share invitation url (required)")

	return command
}
