package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	mapshare "github.com/emrgen/mapshare"
	"github.com/emrgen/mapshare/internal/config"
	"github.com/emrgen/mapshare/internal/model"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createDocCmd())
	rootCmd.AddCommand(getDocCmd())
	rootCmd.AddCommand(listDocCmd())
	rootCmd.AddCommand(renameDocCmd())
	rootCmd.AddCommand(deleteDocCmd())

	rootCmd.AddCommand(placeCmd)
	placeCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	placeCmd.AddCommand(addPlaceCmd())
	placeCmd.AddCommand(listPlacesCmd())
	placeCmd.AddCommand(removePlaceCmd())

	rootCmd.AddCommand(commentCmd)
	commentCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	commentCmd.AddCommand(addCommentCmd())
	commentCmd.AddCommand(listCommentsCmd())

	rootCmd.AddCommand(reactCmd())
}

func newClient() (*mapshare.Client, error) {
	return mapshare.NewClient(config.LoadConfig(), nil)
}

func checkMissingFlags(cmd *cobra.Command, required []string) bool {
	missing := false
	for _, flag := range required {
		if cmd.Flag(flag).Value.String() == "" {
			color.Red("missing: --%s", flag)
			missing = true
		}
	}

	return missing
}

func createDocCmd() *cobra.Command {
	var name string

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a map document",
		Example: "mapshare create -n <name>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"name"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			doc, err := client.Documents.CreateDocument(context.Background(), name)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document created with id: %s", doc.ID)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "name of the document (required)")
	command.Flags().SortFlags = false

	return command
}

func getDocCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a map document",
		Example: "mapshare get -d <doc-id>",
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

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Shared", "Modified"})
			table.Append([]string{doc.ID, doc.Name, strconv.FormatBool(doc.IsShared), doc.UpdatedAt.Format("2006-01-02 15:04")})
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func listDocCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "list",
		Short:   "list map documents",
		Example: "mapshare list",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			docs, err := client.Documents.ListDocuments(context.Background())
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Shared", "Modified"})
			for _, doc := range docs {
				table.Append([]string{doc.ID, doc.Name, strconv.FormatBool(doc.IsShared), doc.UpdatedAt.Format("2006-01-02 15:04")})
			}
			table.Render()
		},
	}

	return command
}

func renameDocCmd() *cobra.Command {
	var docID string
	var name string

	command := &cobra.Command{
		Use:     "rename",
		Short:   "rename a map document",
		Example: "mapshare rename -d <doc-id> -n <name>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"doc-id", "name"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			doc, err := client.Documents.RenameDocument(context.Background(), docID, name)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s renamed to %s", doc.ID, doc.Name)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().StringVarP(&name, "name", "n", "", "new name (required)")

	return command
}

func deleteDocCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a map document and its annotations",
		Example: "mapshare delete -d <doc-id>",
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

			if err := client.Documents.DeleteDocument(context.Background(), docID); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("document %s deleted", docID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "place commands",
}

func addPlaceCmd() *cobra.Command {
	var docID string
	var name string
	var lat, lon float64

	command := &cobra.Command{
		Use:     "add",
		Short:   "pin a place onto a document",
		Example: "mapshare place add -d <doc-id> -n <name> --lat 37.33 --lon -122.01",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"doc-id", "name"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			place, err := client.Documents.AddPlace(context.Background(), docID, &model.Place{
				Name:      name,
				Latitude:  lat,
				Longitude: lon,
			}, contextAuthor())
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("place created with id: %s", place.ID)
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")
	command.Flags().StringVarP(&name, "name", "n", "", "place name (required)")
	command.Flags().Float64Var(&lat, "lat", 0, "latitude")
	command.Flags().Float64Var(&lon, "lon", 0, "longitude")
	bindContextFlags(command)
	command.Flags().SortFlags = false

	return command
}

func listPlacesCmd() *cobra.Command {
	var docID string

	command := &cobra.Command{
		Use:     "list",
		Short:   "list the places of a document",
		Example: "mapshare place list -d <doc-id>",
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

			places, err := client.Documents.ListPlaces(context.Background(), docID)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Lat", "Lon"})
			for _, place := range places {
				table.Append([]string{
					place.ID,
					place.Name,
					strconv.FormatFloat(place.Latitude, 'f', 5, 64),
					strconv.FormatFloat(place.Longitude, 'f', 5, 64),
				})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&docID, "doc-id", "d", "", "document id (required)")

	return command
}

func removePlaceCmd() *cobra.Command {
	var placeID string

	command := &cobra.Command{
		Use:     "remove",
		Short:   "remove a place",
		Example: "mapshare place remove -p <place-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"place-id"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if err := client.Documents.RemovePlace(context.Background(), placeID); err != nil {
				logrus.Error(err)
				return
			}
		},
	}

	command.Flags().StringVarP(&placeID, "place-id", "p", "", "place id (required)")

	return command
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "comment commands",
}

func addCommentCmd() *cobra.Command {
	var placeID string
	var content string

	command := &cobra.Command{
		Use:     "add",
		Short:   "comment on a place",
		Example: "mapshare comment add -p <place-id> -c <content>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"place-id", "content"}) {
				return
			}

			author := contextAuthor()
			if author == "" {
				color.Red("no author set, use: mapshare context set -a <name>")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			comment, err := client.Documents.AddComment(context.Background(), placeID, author, content)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("comment created with id: %s", comment.ID)
		},
	}

	command.Flags().StringVarP(&placeID, "place-id", "p", "", "place id (required)")
	command.Flags().StringVarP(&content, "content", "c", "", "comment content (required)")
	bindContextFlags(command)

	return command
}

func listCommentsCmd() *cobra.Command {
	var placeID string

	command := &cobra.Command{
		Use:     "list",
		Short:   "list the comments of a place",
		Example: "mapshare comment list -p <place-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"place-id"}) {
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			comments, err := client.Documents.ListComments(context.Background(), placeID)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Author", "Content", "Created"})
			for _, comment := range comments {
				table.Append([]string{comment.AuthorName, comment.Content, comment.CreatedAt.Format("2006-01-02 15:04")})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&placeID, "place-id", "p", "", "place id (required)")

	return command
}

func reactCmd() *cobra.Command {
	var placeID string
	var reaction string

	command := &cobra.Command{
		Use:     "react",
		Short:   "toggle a reaction on a place",
		Example: "mapshare react -p <place-id> -t thumbsUp",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, []string{"place-id", "type"}) {
				return
			}

			author := contextAuthor()
			if author == "" {
				color.Red("no author set, use: mapshare context set -a <name>")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			state, err := client.Reactions.Toggle(context.Background(), placeID, author, model.ReactionType(reaction))
			if err != nil {
				logrus.Error(err)
				return
			}

			fmt.Printf("reaction state: %s\n", state)
		},
	}

	command.Flags().StringVarP(&placeID, "place-id", "p", "", "place id (required)")
	command.Flags().StringVarP(&reaction, "type", "t", "", "reaction type: thumbsUp or thumbsDown (required)")
	bindContextFlags(command)

	return command
}
