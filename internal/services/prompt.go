package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchPrompt creates the ATS evaluation prompt for a resume and a job
// description. The template pins the output to a single JSON object with
// exactly three fields so the normalizer has a predictable shape to look for.
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are a skilled and very experienced ATS (Application Tracking System)
with a deep understanding of the tech field: software engineering, data science,
data analysis and big data engineering. Your task is to evaluate the resume
against the given job description. Consider that the job market is very
competitive and provide the best assistance for improving the resume. Assign a
percentage match based on the job description and list the missing keywords
with high accuracy.

RESUME:
%s

JOB DESCRIPTION:
%s

Respond with one single JSON object having exactly this structure and nothing
else, no surrounding text or explanation:
{"JD Match":"%%","MissingKeywords":[],"Profile Summary":""}`,
		resumeText, jobDescription)
}
