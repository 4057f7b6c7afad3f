package main

//
// Subcommands
//

import (
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/goflickr/goflickr/pkg/flickr"
	"github.com/spf13/cobra"
)

// runFunc is the body of a subcommand.
type runFunc func(sess *session, options *Options, args []string) error

// withSession adapts fn to the signature of cobra.Command.RunE.
func withSession(options *Options, w io.Writer, fn runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(options, newLogger(options, w))
		if err != nil {
			return err
		}
		return fn(sess, options, args)
	}
}

// table emits fields as a "table" typed log entry.
func table(logger log.Interface, title string, fields log.Fields) {
	fields["type"] = "table"
	logger.WithFields(fields).Info(title)
}

func registerEcho(rootCmd *cobra.Command, options *Options, w io.Writer) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "echo [KEY=VALUE...]",
		Short: "Calls flickr.test.echo with the given parameters",
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			values, err := makeMapStringString(args)
			if err != nil {
				return err
			}
			ctx, cancel := options.context()
			defer cancel()
			echoed, err := sess.client.Test.Echo(ctx, values)
			if err != nil {
				return err
			}
			fields := log.Fields{}
			for key, value := range echoed {
				fields[key] = value
			}
			table(sess.logger, "echo", fields)
			return nil
		}),
	})
}

func registerLogin(rootCmd *cobra.Command, options *Options, w io.Writer) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Shows the user owning the saved auth token",
		Args:  cobra.NoArgs,
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			user, err := sess.client.Test.Login(ctx)
			if err != nil {
				return err
			}
			table(sess.logger, "login", log.Fields{"id": user.ID, "username": user.Username})
			return nil
		}),
	})
}

func registerPerson(rootCmd *cobra.Command, options *Options, w io.Writer) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "person USERNAME",
		Short: "Shows information about a user",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			user, err := sess.client.People.FindByUsername(ctx, args[0])
			if err != nil {
				return err
			}
			person, err := sess.client.People.GetInfo(ctx, user.NSID)
			if err != nil {
				return err
			}
			table(sess.logger, "person", log.Fields{
				"nsid":     person.NSID,
				"username": person.Username,
				"realname": person.RealName,
				"location": person.Location,
				"photos":   person.PhotoCount,
			})
			return nil
		}),
	})
}

func registerPhoto(rootCmd *cobra.Command, options *Options, w io.Writer) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "photo PHOTO_ID",
		Short: "Shows information about a photo",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			info, err := sess.client.Photos.GetInfo(ctx, args[0])
			if err != nil {
				return err
			}
			var tags []string
			for _, tag := range info.Tags {
				tags = append(tags, tag.Value)
			}
			table(sess.logger, "photo", log.Fields{
				"id":    info.ID,
				"owner": info.Owner.Username,
				"title": info.Title,
				"tags":  strings.Join(tags, " "),
				"views": info.Views,
			})
			return nil
		}),
	})
}

func registerSearch(rootCmd *cobra.Command, options *Options, w io.Writer) {
	subCmd := &cobra.Command{
		Use:   "search",
		Short: "Searches photos",
		Args:  cobra.NoArgs,
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			list, err := sess.client.Photos.Search(ctx, &flickr.SearchOptions{
				Tags:    options.Tags,
				UserID:  options.UserID,
				Page:    options.Page,
				PerPage: options.PerPage,
			})
			if err != nil {
				return err
			}
			sess.logger.Infof("page %d of %d (%d photos)", list.Page, list.Pages, list.Total)
			for _, photo := range list.Photos {
				table(sess.logger, "photo", log.Fields{
					"id":    photo.ID,
					"owner": photo.Owner,
					"title": photo.Title,
				})
			}
			return nil
		}),
	}
	rootCmd.AddCommand(subCmd)
	flags := subCmd.Flags()
	flags.StringSliceVarP(
		&options.Tags,
		"tag",
		"t",
		[]string{},
		"search photos with this tag (may be specified multiple times)",
	)
	flags.StringVar(&options.UserID, "user", "", "only search photos of this user ID")
	flags.IntVar(&options.Page, "page", 0, "page to return")
	flags.IntVar(&options.PerPage, "per-page", 0, "number of photos per page")
}

func registerTag(rootCmd *cobra.Command, options *Options, w io.Writer) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tag PHOTO_ID TAG...",
		Short: "Adds tags to a photo you own",
		Args:  cobra.MinimumNArgs(2),
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			if err := sess.client.Photos.AddTags(ctx, args[0], args[1:]); err != nil {
				return err
			}
			sess.logger.Infof("tagged photo %s", args[0])
			return nil
		}),
	})
}

func registerAuth(rootCmd *cobra.Command, options *Options, w io.Writer) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Obtains and checks auth tokens",
	}
	rootCmd.AddCommand(authCmd)

	authCmd.AddCommand(&cobra.Command{
		Use:   "frob",
		Short: "Obtains a new frob",
		Args:  cobra.NoArgs,
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			frob, err := sess.client.Auth.GetFrob(ctx)
			if err != nil {
				return err
			}
			table(sess.logger, "frob", log.Fields{"frob": frob})
			return nil
		}),
	})

	urlCmd := &cobra.Command{
		Use:   "url FROB",
		Short: "Prints the URL where you approve the frob",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			loginURL, err := sess.client.Auth.LoginURL(args[0], options.Perms)
			if err != nil {
				return err
			}
			sess.logger.Infof("open %s in your browser", loginURL)
			return nil
		}),
	}
	urlCmd.Flags().StringVar(&options.Perms, "perms", flickr.PermsWrite, "permissions to request (read, write or delete)")
	authCmd.AddCommand(urlCmd)

	authCmd.AddCommand(&cobra.Command{
		Use:   "token FROB",
		Short: "Exchanges an approved frob for a token and saves it",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			info, err := sess.client.Auth.GetToken(ctx, args[0])
			if err != nil {
				return err
			}
			sess.client.SetAuthToken(info.Token)
			if err := sess.saveCredentials(); err != nil {
				return err
			}
			table(sess.logger, "token", log.Fields{
				"perms":    info.Perms,
				"username": info.User.Username,
				"nsid":     info.User.NSID,
			})
			return nil
		}),
	})

	authCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Checks the saved token",
		Args:  cobra.NoArgs,
		RunE: withSession(options, w, func(sess *session, options *Options, args []string) error {
			ctx, cancel := options.context()
			defer cancel()
			info, err := sess.client.Auth.CheckToken(ctx)
			if err != nil {
				return err
			}
			table(sess.logger, "token", log.Fields{
				"perms":    info.Perms,
				"username": info.User.Username,
			})
			return nil
		}),
	})
}
