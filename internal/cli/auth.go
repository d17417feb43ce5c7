package cli

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/auth"
	"hrportal/internal/portal"
)

func (rt *runtime) authCommands() []*cobra.Command {
	return []*cobra.Command{
		rt.loginCommand(),
		rt.registerCommand(),
		rt.logoutCommand(),
		rt.whoamiCommand(),
		rt.profileCommand(),
	}
}

func (rt *runtime) loginCommand() *cobra.Command {
	var form portal.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: rt.withApp(func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			user, err := p.Login(ctx, form)
			if err != nil {
				return err
			}
			return rt.showUser(cmd, user)
		}),
	}
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (rt *runtime) registerCommand() *cobra.Command {
	var form portal.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an employee account and sign in",
		RunE: rt.withApp(func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			user, err := p.Register(ctx, form)
			if err != nil {
				return err
			}
			return rt.showUser(cmd, user)
		}),
	}
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "repeat the password (defaults to --password)")
	return cmd
}

func (rt *runtime) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: rt.withApp(func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			if err := p.Logout(ctx); err != nil {
				return err
			}
			return rt.done(cmd, "Logged out")
		}),
	}
}

func (rt *runtime) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			user, _ := p.Session().User()
			return rt.showUser(cmd, user)
		}),
	}
}

func (rt *runtime) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update your profile, password or picture",
	}

	var form portal.ProfileForm
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile details",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			current, _ := p.Session().User()
			if form.FirstName == "" {
				form.FirstName = current.FirstName
			}
			if form.LastName == "" {
				form.LastName = current.LastName
			}
			user, err := p.UpdateProfile(ctx, form)
			if err != nil {
				return err
			}
			return rt.showUser(cmd, user)
		}),
	}
	update.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	update.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	update.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	update.Flags().StringVar(&form.Department, "department", "", "department")
	update.Flags().StringVar(&form.Position, "position", "", "position")

	var pw portal.ChangePasswordForm
	password := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			if pw.ConfirmPassword == "" {
				pw.ConfirmPassword = pw.NewPassword
			}
			if err := p.ChangePassword(ctx, pw); err != nil {
				return err
			}
			return rt.done(cmd, "Password updated")
		}),
	}
	password.Flags().StringVar(&pw.CurrentPassword, "current", "", "current password")
	password.Flags().StringVar(&pw.NewPassword, "new", "", "new password")
	password.Flags().StringVar(&pw.ConfirmPassword, "confirm", "", "repeat the new password (defaults to --new)")

	picture := &cobra.Command{
		Use:   "picture <image>",
		Short: "Upload a profile picture (image under 2MB)",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			file, closeFile, err := openFile(args[0])
			if err != nil {
				return err
			}
			defer closeFile()
			user, err := p.UploadProfilePicture(ctx, file)
			if err != nil {
				return err
			}
			return rt.showUser(cmd, user)
		}),
	}

	cmd.AddCommand(update, password, picture)
	return cmd
}

func (rt *runtime) showUser(cmd *cobra.Command, user auth.User) error {
	return rt.record(cmd, user,
		"Name", user.FirstName+" "+user.LastName,
		"Email", user.Email,
		"Role", string(user.Role),
		"Employee", user.EmployeeID,
	)
}

// openFile describes a local file for upload. The content type comes from
// the extension.
func openFile(path string) (portal.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return portal.File{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return portal.File{}, nil, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return portal.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Content:     f,
	}, func() { f.Close() }, nil
}
