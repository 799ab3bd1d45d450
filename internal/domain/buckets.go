package domain

// TaskBuckets is the grouped view of a folder's tasks by status.
type TaskBuckets struct {
	Pending    []Task `json:"pending"`
	InProgress []Task `json:"inProgress"`
	Completed  []Task `json:"completed"`
}

// NewTaskBuckets returns buckets with empty, non-nil slices.
func NewTaskBuckets() TaskBuckets {
	return TaskBuckets{
		Pending:    []Task{},
		InProgress: []Task{},
		Completed:  []Task{},
	}
}

// PartitionTasks places every task in exactly one bucket, keeping input order.
func PartitionTasks(tasks []Task) TaskBuckets {
	b := NewTaskBuckets()
	for _, t := range tasks {
		b.add(t)
	}
	return b
}

func (b *TaskBuckets) add(t Task) {
	switch NormalizeStatus(string(t.Status)) {
	case StatusInProgress:
		b.InProgress = append(b.InProgress, t)
	case StatusCompleted:
		b.Completed = append(b.Completed, t)
	default:
		b.Pending = append(b.Pending, t)
	}
}

// Filter applies keep to each bucket independently and returns the same
// three-bucket shape.
func (b TaskBuckets) Filter(keep func(Task) bool) TaskBuckets {
	out := NewTaskBuckets()
	out.Pending = filterTasks(b.Pending, keep)
	out.InProgress = filterTasks(b.InProgress, keep)
	out.Completed = filterTasks(b.Completed, keep)
	return out
}

// Len returns the number of tasks across all buckets.
func (b TaskBuckets) Len() int {
	return len(b.Pending) + len(b.InProgress) + len(b.Completed)
}

// All flattens the buckets in pending, in-progress, completed order.
func (b TaskBuckets) All() []Task {
	all := make([]Task, 0, b.Len())
	all = append(all, b.Pending...)
	all = append(all, b.InProgress...)
	return append(all, b.Completed...)
}

func filterTasks(tasks []Task, keep func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
