package operations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rudikone/TestExamples/rest"
	"github.com/rudikone/TestExamples/rest/model"
)

// Client returns the ./testexamples client sub-command object, which talks
// to a running roster service.
func Client() cli.Command {
	return cli.Command{
		Name:  "client",
		Usage: "run a simple roster client",
		Flags: restServiceFlags(),
		Subcommands: []cli.Command{
			printStatus(),
			listCharacters(),
			getCharacter(),
			recruitCharacter(),
			dismissCharacter(),
			census(),
		},
	}
}

func newClient(c *cli.Context) (*rest.Client, error) {
	client, err := rest.NewClient(rest.ClientOptions{
		Host:   c.Parent().String(clientHostFlag),
		Port:   c.Parent().Int(clientPortFlag),
		Prefix: c.Parent().String(clientPrefixFlag),
	})
	return client, errors.Wrap(err, "problem creating REST client")
}

func printJSON(c *cli.Context, data interface{}) error {
	grip.Debug(data)
	out, err := json.MarshalIndent(data, "", "   ")
	if err != nil {
		return errors.Wrap(err, "problem rendering result")
	}

	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return errors.WithStack(err)
}

func printStatus() cli.Command {
	return cli.Command{
		Name:  "status",
		Usage: "prints json document for the status of the service",
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}

			status, err := client.GetStatus(context.Background())
			if err != nil {
				return errors.Wrap(err, "problem getting status")
			}

			return printJSON(c, status)
		},
	}
}

func listCharacters() cli.Command {
	return cli.Command{
		Name:  "list",
		Usage: "prints the members of the fellowship, optionally of one race",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  raceFlag,
				Usage: "only list characters of this race",
			},
		},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}

			characters, err := client.ListCharacters(context.Background(), c.String(raceFlag))
			if err != nil {
				return errors.Wrap(err, "problem listing characters")
			}

			return printJSON(c, characters)
		},
	}
}

func getCharacter() cli.Command {
	return cli.Command{
		Name:   "get",
		Usage:  "prints the member with the given id",
		Flags:  []cli.Flag{cli.StringFlag{Name: idFlag, Usage: "id of the character"}},
		Before: setFlagOrFirstPositional(idFlag),
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}

			character, err := client.GetCharacter(context.Background(), c.String(idFlag))
			if err != nil {
				return errors.Wrapf(err, "problem getting character '%s'", c.String(idFlag))
			}

			return printJSON(c, character)
		},
	}
}

func recruitCharacter() cli.Command {
	return cli.Command{
		Name:  "recruit",
		Usage: "adds a character to the fellowship",
		Flags: characterFlags(),
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}

			character := model.APICharacter{}
			if c.IsSet(nameFlag) {
				character.Name = utility.ToStringPtr(c.String(nameFlag))
			}
			if c.IsSet(ageFlag) {
				character.Age = utility.ToIntPtr(c.Int(ageFlag))
			}
			if c.IsSet(raceFlag) {
				character.Race = utility.ToStringPtr(c.String(raceFlag))
			}

			recruited, err := client.RecruitCharacter(context.Background(), character)
			if err != nil {
				return errors.Wrap(err, "problem recruiting character")
			}

			return printJSON(c, recruited)
		},
	}
}

func dismissCharacter() cli.Command {
	return cli.Command{
		Name:   "dismiss",
		Usage:  "removes the member with the given id",
		Flags:  []cli.Flag{cli.StringFlag{Name: idFlag, Usage: "id of the character"}},
		Before: setFlagOrFirstPositional(idFlag),
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}

			character, err := client.DismissCharacter(context.Background(), c.String(idFlag))
			if err != nil {
				return errors.Wrapf(err, "problem dismissing character '%s'", c.String(idFlag))
			}

			return printJSON(c, character)
		},
	}
}

func census() cli.Command {
	return cli.Command{
		Name:  "census",
		Usage: "prints the latest census, or schedules a new one",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  scheduleFlag,
				Usage: "schedule a new census instead of printing the latest",
			},
		},
		Action: func(c *cli.Context) error {
			client, err := newClient(c)
			if err != nil {
				return err
			}

			if c.Bool(scheduleFlag) {
				id, err := client.ScheduleCensus(context.Background())
				if err != nil {
					return errors.Wrap(err, "problem scheduling census")
				}
				return printJSON(c, model.APIScheduledJob{ID: id})
			}

			report, err := client.GetCensus(context.Background())
			if err != nil {
				return errors.Wrap(err, "problem getting census")
			}

			return printJSON(c, report)
		},
	}
}
