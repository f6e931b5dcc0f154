// ABOUTME: Deterministic natural-language command interpreter for task management
// ABOUTME: Ordered regex rule table; returns tagged outcomes, never faults
package chat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/todo-assistant/internal/models"
)

// TaskStore is the slice of the task store the chat layer consumes
type TaskStore interface {
	ListByUser(userID string) ([]models.Task, error)
	Create(userID, title, description string, complete bool) (*models.Task, error)
	Get(userID, taskID string) (*models.Task, error)
	Update(userID, taskID string, upd models.TaskUpdate) (*models.Task, error)
	Delete(userID, taskID string) error
}

// OutcomeKind classifies an interpreter result
type OutcomeKind int

const (
	// NotACommand means the text is not a task command; callers fall
	// through to the language-model path.
	NotACommand OutcomeKind = iota
	// Handled means the intent was recognized and executed
	Handled
	// NeedsClarification means the intent was recognized but the text
	// was too ambiguous to act on; the response asks for specifics.
	NeedsClarification
)

// Outcome is the interpreter's tagged result. The caller branches on
// Kind instead of sniffing response prefixes.
type Outcome struct {
	Kind     OutcomeKind
	Response string
}

func handled(format string, args ...interface{}) Outcome {
	return Outcome{Kind: Handled, Response: fmt.Sprintf(format, args...)}
}

func clarify(text string) Outcome {
	return Outcome{Kind: NeedsClarification, Response: text}
}

type intent int

const (
	intentNone intent = iota
	intentList
	intentCreate
	intentUpdate
	intentDelete
)

// intentKeywords is checked in order; the first family with any keyword
// present in the lowercased text wins.
var intentKeywords = []struct {
	intent   intent
	keywords []string
}{
	{intentList, []string{"list", "show", "view", "all", "my", "tasks"}},
	{intentCreate, []string{"create", "add", "new", "make"}},
	{intentUpdate, []string{"update", "change", "modify", "complete", "done", "finish"}},
	{intentDelete, []string{"delete", "remove", "cancel"}},
}

func classifyIntent(text string) intent {
	lower := strings.ToLower(text)
	for _, family := range intentKeywords {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.intent
			}
		}
	}
	return intentNone
}

// Extraction rules. Creation rules run in order; the first match wins.
var (
	reCreateWithDesc = regexp.MustCompile(`(?i)(?:add|create|make|new)\s+(?:a\s+)?(?:task|todo)\s+(.+?)\s+(?:description:|desc:|dis:)\s*(.+)`)
	reCreateTo       = regexp.MustCompile(`(?i)(?:add|create|make|new)\s+(?:a\s+)?(?:task|todo)\s+(?:to|for)\s+(.+?)(?:\s+and\s+.*)?$`)
	reCreateBare     = regexp.MustCompile(`(?i)(?:add|create|make|new)\s+(?:a\s+)?(?:task|todo)\s+(.+)$`)

	reTaskID = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	reTitleMarker = regexp.MustCompile(`(?i)(?:title|name):\s*(.+?)(?:\s+(?:and|with)\s+(?:description|desc|dis):.*)?$`)
	reDescMarker  = regexp.MustCompile(`(?i)(?:description|desc|dis):\s*(.+)$`)

	reUpdateToComplete = regexp.MustCompile(`(?i)(?:update|change|modify)\s+(?:the\s+)?task\s+(.+?)\s+(?:to\s+complete|to\s+done|to\s+be\s+complete|and\s+mark\s+as\s+complete|and\s+complete)`)
	reUpdateTitle      = regexp.MustCompile(`(?i)(?:update|change|modify)\s+(?:the\s+)?task\s+(.+?)\s+(?:title|name):\s*(.+?)(?:\s+(?:and|with)\s+(?:description|desc|dis):\s*(.+))?$`)
	reUpdateDesc       = regexp.MustCompile(`(?i)(?:update|change|modify)\s+(?:the\s+)?task\s+(.+?)\s+(?:description|desc|dis):\s*(.+)$`)
	reUpdateBareTitle  = regexp.MustCompile(`(?i)(?:update|change|modify)\s+(?:the\s+)?(?:task\s+)?(?:named\s+|with\s+name\s+|name:\s*)?(.+?)(?:\s+(?:to|and)\b.*)?$`)

	reDeleteTitle = regexp.MustCompile(`(?i)(?:delete|remove|cancel)\s+(?:the\s+)?(?:task\s+)?(?:named\s+|with\s+name\s+|name:\s*)?(.+)$`)
)

var completionWords = []string{"complete", "completed", "done", "finish"}

func wantsCompletion(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range completionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Interpreter classifies free-form text into task-management intents and
// executes them against the store, keeping deterministic operations off
// the language-model path.
type Interpreter struct {
	tasks TaskStore
}

// NewInterpreter creates an Interpreter backed by the given task store
func NewInterpreter(tasks TaskStore) *Interpreter {
	return &Interpreter{tasks: tasks}
}

// Interpret classifies and executes the text for the acting user. Store
// failures surface as natural-language responses, never as faults.
func (i *Interpreter) Interpret(userID, text string) Outcome {
	switch classifyIntent(text) {
	case intentList:
		return i.handleList(userID)
	case intentCreate:
		return i.handleCreate(userID, text)
	case intentUpdate:
		return i.handleUpdate(userID, text)
	case intentDelete:
		return i.handleDelete(userID, text)
	}
	return Outcome{Kind: NotACommand}
}

func (i *Interpreter) handleList(userID string) Outcome {
	tasks, err := i.tasks.ListByUser(userID)
	if err != nil {
		return handled("Error retrieving tasks: %v", err)
	}
	if len(tasks) == 0 {
		return handled("You don't have any tasks yet. You can create a new task by saying something like 'Create a task to buy groceries'.")
	}

	var b strings.Builder
	b.WriteString("Here are your tasks:\n")
	for _, task := range tasks {
		status := "○ Pending"
		if task.Complete {
			status = "✓ Completed"
		}
		b.WriteString("- " + status + ": " + task.Title)
		if task.Description != "" {
			b.WriteString(" - " + task.Description)
		}
		b.WriteString(" (ID: " + task.ID + ")\n")
	}
	return handled("%s", strings.TrimSpace(b.String()))
}

func (i *Interpreter) handleCreate(userID, text string) Outcome {
	var title, description string
	if m := reCreateWithDesc.FindStringSubmatch(text); m != nil {
		title, description = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	} else if m := reCreateTo.FindStringSubmatch(text); m != nil {
		title = strings.TrimSpace(m[1])
	} else if m := reCreateBare.FindStringSubmatch(text); m != nil {
		title = strings.TrimSpace(m[1])
	}

	if title == "" {
		return clarify("I'd be happy to create a task for you. Please specify what task you'd like to create. For example: 'Add a task class 1' or 'Add a task class 1 dis: 2pm'")
	}

	task, err := i.tasks.Create(userID, title, description, false)
	if err != nil {
		return handled("Error creating task: %v", err)
	}
	return handled("I've created the task '%s' for you (ID: %s).", task.Title, task.ID)
}

func (i *Interpreter) handleUpdate(userID, text string) Outcome {
	if taskID := reTaskID.FindString(text); taskID != "" {
		return i.updateByID(userID, taskID, text)
	}

	if m := reUpdateToComplete.FindStringSubmatch(text); m != nil {
		return i.completeByTitle(userID, strings.TrimSpace(m[1]))
	}

	if m := reUpdateTitle.FindStringSubmatch(text); m != nil {
		upd := models.TaskUpdate{}
		newTitle := strings.TrimSpace(m[2])
		upd.Title = &newTitle
		if m[3] != "" {
			newDesc := strings.TrimSpace(m[3])
			upd.Description = &newDesc
		}
		return i.updateByTitle(userID, strings.TrimSpace(m[1]), upd)
	}

	if m := reUpdateDesc.FindStringSubmatch(text); m != nil {
		newDesc := strings.TrimSpace(m[2])
		return i.updateByTitle(userID, strings.TrimSpace(m[1]), models.TaskUpdate{Description: &newDesc})
	}

	// Completion request without an explicit target: mark the most
	// recently created incomplete task complete.
	if wantsCompletion(text) {
		if outcome, ok := i.completeMostRecent(userID); ok {
			return outcome
		}
	}

	if m := reUpdateBareTitle.FindStringSubmatch(text); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" {
			tasks, err := i.tasks.ListByUser(userID)
			if err != nil {
				return handled("Error accessing your tasks: %v", err)
			}
			if task := findByTitle(tasks, title); task != nil {
				return clarify(fmt.Sprintf("To update task '%s', please specify what you'd like to change. For example: 'Update task %s to complete' or 'Update task %s title: new title'", task.Title, task.Title, task.Title))
			}
			return handled("I couldn't find a task titled '%s'. Could you please specify the exact task title or provide the task ID?", title)
		}
	}

	return clarify("To update a task, please specify the task ID or exact title. For example: 'Update task 123 to complete' or 'Update task class 1 title: new title'")
}

func (i *Interpreter) updateByID(userID, taskID, text string) Outcome {
	var upd models.TaskUpdate
	if wantsCompletion(text) {
		complete := true
		upd.Complete = &complete
	} else {
		if m := reTitleMarker.FindStringSubmatch(text); m != nil {
			newTitle := strings.TrimSpace(m[1])
			upd.Title = &newTitle
		}
		if m := reDescMarker.FindStringSubmatch(text); m != nil {
			newDesc := strings.TrimSpace(m[1])
			upd.Description = &newDesc
		}
		if upd.Empty() {
			return clarify("To update a task, please specify what you'd like to change. For example: 'Update task 123 to mark as complete' or 'Update task 123 title: new title'")
		}
	}

	task, err := i.tasks.Update(userID, taskID, upd)
	if err != nil {
		return handled("Error updating task: %v", err)
	}
	return handled("Task %s has been updated successfully.", task.ID)
}

func (i *Interpreter) completeByTitle(userID, title string) Outcome {
	tasks, err := i.tasks.ListByUser(userID)
	if err != nil {
		return handled("Error accessing your tasks: %v", err)
	}
	task := findByTitle(tasks, title)
	if task == nil {
		return handled("I couldn't find a task titled '%s'. Could you please specify the exact task title or provide the task ID?", title)
	}
	complete := true
	if _, err := i.tasks.Update(userID, task.ID, models.TaskUpdate{Complete: &complete}); err != nil {
		return handled("Error updating task: %v", err)
	}
	return handled("Task '%s' has been marked as complete.", task.Title)
}

func (i *Interpreter) updateByTitle(userID, title string, upd models.TaskUpdate) Outcome {
	tasks, err := i.tasks.ListByUser(userID)
	if err != nil {
		return handled("Error accessing your tasks: %v", err)
	}
	task := findByTitle(tasks, title)
	if task == nil {
		return handled("I couldn't find a task titled '%s'. Could you please specify the exact task title or provide the task ID?", title)
	}
	if _, err := i.tasks.Update(userID, task.ID, upd); err != nil {
		return handled("Error updating task: %v", err)
	}
	return handled("Task '%s' has been updated successfully.", task.Title)
}

func (i *Interpreter) completeMostRecent(userID string) (Outcome, bool) {
	tasks, err := i.tasks.ListByUser(userID)
	if err != nil {
		return handled("Error accessing your tasks: %v", err), true
	}
	// tasks are in creation order; walk backwards for the newest
	for idx := len(tasks) - 1; idx >= 0; idx-- {
		if !tasks[idx].Complete {
			complete := true
			if _, err := i.tasks.Update(userID, tasks[idx].ID, models.TaskUpdate{Complete: &complete}); err != nil {
				return handled("Error updating task: %v", err), true
			}
			return handled("Task '%s' has been marked as complete.", tasks[idx].Title), true
		}
	}
	return Outcome{}, false
}

func (i *Interpreter) handleDelete(userID, text string) Outcome {
	if taskID := reTaskID.FindString(text); taskID != "" {
		if err := i.tasks.Delete(userID, taskID); err != nil {
			return handled("Error deleting task: %v", err)
		}
		return handled("Task deleted successfully.")
	}

	if m := reDeleteTitle.FindStringSubmatch(text); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" {
			tasks, err := i.tasks.ListByUser(userID)
			if err != nil {
				return handled("Error accessing your tasks: %v", err)
			}
			task := findByTitle(tasks, title)
			if task == nil {
				return handled("I couldn't find a task titled '%s'. Could you please specify the exact task title or provide the task ID?", title)
			}
			if err := i.tasks.Delete(userID, task.ID); err != nil {
				return handled("Error deleting task: %v", err)
			}
			return handled("Task deleted successfully.")
		}
	}

	return clarify("To delete a task, please specify the task ID or exact title. For example: 'Delete task 123' or 'Delete task buy groceries'")
}

// findByTitle matches a task by exact case-insensitive title
func findByTitle(tasks []models.Task, title string) *models.Task {
	for idx := range tasks {
		if strings.EqualFold(tasks[idx].Title, title) {
			return &tasks[idx]
		}
	}
	return nil
}
