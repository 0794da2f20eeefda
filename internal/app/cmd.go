package app

// Command is a blogctl subcommand.
type Command string

const (
	CommandMigrate Command = "migrate"
	CommandSeed    Command = "seed"
	CommandCheck   Command = "check"
	CommandUserAdd Command = "useradd"
	CommandHelp    Command = "help"
)

// ParseCommand picks the subcommand from args; anything unknown is help.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandHelp
	}
	switch c := Command(args[0]); c {
	case CommandMigrate, CommandSeed, CommandCheck, CommandUserAdd:
		return c
	default:
		return CommandHelp
	}
}
