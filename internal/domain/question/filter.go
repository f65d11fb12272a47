package question

import "sort"

// FilterByExam keeps the questions of one exam type. An empty exam type
// keeps everything.
func FilterByExam(qs []Question, examType string) []Question {
	if examType == "" {
		return qs
	}
	return filter(qs, func(q Question) bool { return q.ExamType == examType })
}

// FilterByDifficulty applies a difficulty filter; "" and "mixed" keep all.
func FilterByDifficulty(qs []Question, d Difficulty) []Question {
	if !d.IsFilter() {
		return qs
	}
	return filter(qs, func(q Question) bool { return q.Difficulty == d })
}

func FilterBySubject(qs []Question, subject string) []Question {
	if subject == "" {
		return qs
	}
	return filter(qs, func(q Question) bool { return q.Subject == subject })
}

// FilterByTypes keeps questions whose type is one of types.
func FilterByTypes(qs []Question, types ...Type) []Question {
	if len(types) == 0 {
		return qs
	}
	return filter(qs, func(q Question) bool {
		for _, t := range types {
			if q.Type == t {
				return true
			}
		}
		return false
	})
}

// Subjects returns the distinct subjects of qs in sorted order.
func Subjects(qs []Question) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range qs {
		if _, ok := seen[q.Subject]; ok {
			continue
		}
		seen[q.Subject] = struct{}{}
		out = append(out, q.Subject)
	}
	sort.Strings(out)
	return out
}

func filter(qs []Question, keep func(Question) bool) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
