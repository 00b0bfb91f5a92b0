package taskfile

import (
	"fmt"

	"github.com/cgast/leaves/pkg/params"
	"github.com/cgast/leaves/pkg/task"
)

// Build defines every task of tf on m. Before each definition the task's
// parameters are staged on decl, so the manager's definition hook attaches
// them to that task. Tasks with a run script get a shell action from sh.
func Build(tf Taskfile, m *task.Manager, decl *params.Declaration, sh *Shell) error {
	for _, td := range tf.Tasks {
		declare(decl, td)

		def := task.Def{
			Description: td.Description,
			Prereqs:     td.Deps,
			Parallel:    td.Parallel,
		}
		if td.Run != "" && sh != nil {
			def.Actions = []task.Action{sh.Action(td.Run)}
		}

		if _, err := m.Define(td.Name, def); err != nil {
			return fmt.Errorf("define task %s: %w", td.Name, err)
		}
	}
	return nil
}

func declare(decl *params.Declaration, td TaskDef) {
	if len(td.Params) > 0 {
		decl.Required(td.Params...)
	}
	if len(td.Optional) > 0 {
		opts := make([]params.Param, len(td.Optional))
		for i, o := range td.Optional {
			opts[i] = params.Default(o.Name, string(o.Default))
		}
		decl.Optional(opts...)
	}
	for _, a := range td.Aliases {
		decl.Alias(a.Alias, a.Param)
	}
	if td.Prompt {
		decl.Interactive()
	}
}
