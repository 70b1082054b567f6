package pipeline

import (
	"fmt"
	"strings"

	"resumeforge/internal/keywords"
)

// InterviewQuestions builds a Markdown interview-preparation sheet from
// the job description. The technical questions weave in the posting's
// top keyword terms; generic wording is substituted when the posting is
// too short to yield them.
func InterviewQuestions(jobDescription string) string {
	top := keywords.TopNgrams(jobDescription, 15)
	topSkills := make([]string, 0, 10)
	for _, kw := range top {
		topSkills = append(topSkills, kw.Term)
		if len(topSkills) == 10 {
			break
		}
	}

	skillAt := func(i int, fallback string) string {
		if i < len(topSkills) {
			return topSkills[i]
		}
		return fallback
	}

	var b strings.Builder
	b.WriteString(`# Interview Preparation Questions

## Behavioral Questions

**Behavioral Q1:** Tell me about a time when you faced a significant challenge in a project. How did you overcome it?
*Tip:* Use the STAR method (Situation, Task, Action, Result) to structure your answer.

**Behavioral Q2:** Describe a situation where you had to work with a difficult team member.
*Tip:* Focus on your problem-solving approach and positive outcome.

**Behavioral Q3:** Give an example of when you had to meet a tight deadline.
*Tip:* Highlight your time management and prioritization skills.

**Behavioral Q4:** Tell me about a time you failed. What did you learn?
*Tip:* Show self-awareness and growth mindset.

## Technical Questions

`)
	fmt.Fprintf(&b, "**Technical Q1:** What experience do you have with %s mentioned in the job description?\n", skillAt(0, "the key technologies"))
	b.WriteString("*Tip:* Provide specific examples and measurable outcomes.\n\n")
	fmt.Fprintf(&b, "**Technical Q2:** How would you approach %s in this role?\n", skillAt(1, "solving a complex problem"))
	b.WriteString("*Tip:* Walk through your thought process step-by-step.\n\n")
	fmt.Fprintf(&b, "**Technical Q3:** What are the best practices you follow when %s?\n", skillAt(2, "working on projects"))
	b.WriteString("*Tip:* Show you understand industry standards and quality.\n\n")
	b.WriteString(`**Technical Q4:** Can you explain a complex technical concept to a non-technical stakeholder?
*Tip:* Demonstrate communication skills with a clear example.

## Team Fit Questions

**Team Fit Q1:** What type of work environment helps you thrive?
*Tip:* Be honest but align with the company culture you researched.

**Team Fit Q2:** How do you handle feedback and criticism?
*Tip:* Show you're open to growth and continuous improvement.
`)
	return b.String()
}
