package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/liserjrqlxue/simple-util"
	"github.com/pkg/errors"
)

// Runner executes a generated step script.
type Runner interface {
	Run(script string) error
	Output(script string) (string, error)
}

type bashRunner struct{}

func (bashRunner) Run(script string) error {
	return simple_util.RunCmd("bash", script)
}

func (bashRunner) Output(script string) (string, error) {
	cmd := exec.Command("bash", script)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	return string(out), err
}

type Task struct {
	TaskName   string
	JobName    string
	TaskScript string
	TaskArgs   []string
	Script     string
	// Resumable tasks are skipped while Script.complete exists.
	Resumable bool
}

func newTask(resultsPath, taskName, jobName, taskScript string, resumable bool, args ...string) *Task {
	return &Task{
		TaskName:   taskName,
		JobName:    jobName,
		TaskScript: taskScript,
		TaskArgs:   args,
		Script:     shellScript(resultsPath, jobName, taskName),
		Resumable:  resumable,
	}
}

func (task *Task) CmdLine() string {
	var words = []string{shellQuote(task.TaskScript)}
	for _, arg := range task.TaskArgs {
		words = append(words, shellQuote(arg))
	}
	return strings.Join(words, " ")
}

func (task *Task) CreateScript() error {
	return createShell(task.Script, task.CmdLine())
}

func (task *Task) complete() string {
	return task.Script + completeSuffix
}

// Skip reports whether a previous run already finished this task.
func (task *Task) Skip(force bool) bool {
	return task.Resumable && !force && simple_util.FileExists(task.complete())
}

func (task *Task) MarkComplete() error {
	if !task.Resumable {
		return nil
	}
	file, err := os.Create(task.complete())
	if err != nil {
		return errors.Wrapf(err, "Task[%s:%s] mark complete", task.TaskName, task.JobName)
	}
	return file.Close()
}

// ClearComplete removes the marker so the next run repeats the task.
func (task *Task) ClearComplete() error {
	if err := os.Remove(task.complete()); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "Task[%s:%s] clear complete", task.TaskName, task.JobName)
	}
	return nil
}

func (task *Task) logCmd() {
	log.Printf("Task[%-7s:%s] Executing command: %s", task.TaskName, task.JobName, task.CmdLine())
}

// RunTask runs the script unless it is complete or dryRun is set.
func (task *Task) RunTask(runner Runner, force, dryRun bool) error {
	if err := task.CreateScript(); err != nil {
		return err
	}
	if task.Skip(force) {
		log.Printf("skip complete script:%s", task.Script)
		return nil
	}
	task.logCmd()
	if dryRun {
		return nil
	}
	if err := runner.Run(task.Script); err != nil {
		return errors.Wrapf(err, "Task[%s:%s] %s", task.TaskName, task.JobName, task.Script)
	}
	return task.MarkComplete()
}

// OutputTask runs the script and returns its standard output.
func (task *Task) OutputTask(runner Runner, dryRun bool) (string, error) {
	if err := task.CreateScript(); err != nil {
		return "", err
	}
	task.logCmd()
	if dryRun {
		return "", nil
	}
	out, err := runner.Output(task.Script)
	if err != nil {
		return "", errors.Wrapf(err, "Task[%s:%s] %s", task.TaskName, task.JobName, task.Script)
	}
	return out, nil
}

func createShell(fileName, cmdLine string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create shell")
	}
	defer simple_util.DeferClose(file)

	_, err = fmt.Fprintf(file, "#!/bin/bash\nset -e\n%s\n", cmdLine)
	return errors.Wrapf(err, "write shell %s", fileName)
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./-_"

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
