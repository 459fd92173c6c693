package command

// categoryOrder is the order help lists the categories in.
var categoryOrder = []string{
	CategorySetup,
	CategoryCharacter,
	CategoryDice,
	CategoryCombat,
	CategoryEnemy,
	CategoryWorld,
	CategorySystem,
}

// HandleHelp lists every command by usage, grouped by category.
func HandleHelp(env *Env, _ []string) (any, error) {
	reg := env.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	commands := make(map[string]string)
	byCategory := reg.CommandsByCategory()
	categories := make([]Payload, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		cmds := byCategory[cat]
		if len(cmds) == 0 {
			continue
		}
		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			commands[cmd.Usage] = cmd.Help
			names = append(names, cmd.Name)
		}
		categories = append(categories, Payload{"category": cat, "commands": names})
	}
	return Payload{
		"usage":      "wasteland <command> [args...]",
		"commands":   commands,
		"categories": categories,
	}, nil
}
