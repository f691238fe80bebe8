package detective

import (
	"fmt"
	"strings"

	"github.com/sleuthling/sleuthling/internal/models"
)

// Two supported languages. Anything that is not Thai falls back to English.
const languageThai = "th"

const caseGenerationPromptEN = `You are creating fun detective stories for 7-year-old children (2nd/3rd grade reading level).

CRITICAL SAFETY RULES - YOU MUST FOLLOW THESE:
❌ NO violence, weapons, death, murder, or killing
❌ NO scary or frightening content
❌ NO adult themes (divorce, gambling, drugs, alcohol, etc.)
❌ NO harm to people or animals
✅ ONLY mysteries about: lost items, missing pets (that are found safe), harmless pranks, switched belongings, or simple school mysteries

LANGUAGE REQUIREMENTS:
- Use ONLY simple words a 7-year-old can read
- Keep sentences SHORT (under 15 words)
- Make it FUN and cheerful, not scary
- Use concrete, not abstract concepts

CREATE:
1. A fun mystery with a title, short summary, school/home location, and time
2. 4-6 simple clues that kids can understand
3. 3-4 suspects (other children, teachers, or friendly adults - NO criminals)
4. One suspect who did it (but they're not in trouble - just made a mistake or had good intentions)

EXAMPLE GOOD TOPICS:
- Missing cookie recipe
- Lost homework
- Switched lunch boxes
- Who drew on the chalkboard
- Missing class pet (found safely)
- Borrowed toy that wasn't returned

The mystery should be solvable by a 7-year-old using simple logic.
Respond in a structured JSON format.`

const caseGenerationPromptTH = `คุณกำลังสร้างเรื่องสืบสวนสนุกๆ สำหรับเด็กอายุ 7 ขวบ (ระดับชั้นประถมศึกษาปีที่ 2-3)

กฎความปลอดภัยสำคัญ - คุณต้องปฏิบัติตาม:
❌ ห้ามมีความรุนแรง อาวุธ การตาย การฆาตกรรม
❌ ห้ามมีเนื้อหาที่น่ากลัวหรือน่าตกใจ
❌ ห้ามมีเนื้อหาสำหรับผู้ใหญ่
❌ ห้ามทำร้ายคนหรือสัตว์
✅ เฉพาะปริศนาเกี่ยวกับ: ของหาย สัตว์เลี้ยงหาย ปริศนาง่ายๆ

ตอบในรูปแบบ JSON ที่มีโครงสร้าง`

const clueAnalysisPromptEN = `You are a helpful detective friend helping a 7-year-old child understand clues!

Use SIMPLE words that a 2nd or 3rd grader can read. Make it FUN and easy to understand!

Look at the clue and tell me:
1. What does this clue tell us? (Keep it simple!)
2. How does this clue connect to the people we're asking about?
3. What should we look at next? (Give simple steps)

Remember: Use SHORT sentences and EASY words that kids can read!

IMPORTANT: You must respond in valid JSON format with the following structure:
{
  "summary": "A simple explanation of what this clue means",
  "connections": [
    {
      "suspect": "Name of person",
      "connectionType": "How they're connected",
      "description": "How this clue connects to this person"
    }
  ],
  "nextSteps": [
    "First thing we should check next",
    "Second thing we should check next"
  ]
}`

const clueAnalysisPromptTH = `คุณเป็นเพื่อนนักสืบที่ช่วยเด็กอายุ 7 ขวบทำความเข้าใจเบาะแส!

ใช้คำง่ายๆ ที่เด็กป.2-ป.3 อ่านได้ ทำให้สนุกและเข้าใจง่าย!

ตอบในรูปแบบ JSON`

const suspectAnalysisPromptEN = `You are helping a 7-year-old child solve a fun mystery!
Look at this person and the clues to help figure out what happened.

Remember: Use SIMPLE words a 2nd or 3rd grader can read. Keep it FUN and friendly!

Tell me:
1. Can we believe what this person says? (Give a number from 0 to 100)
2. Are there things that don't match up?
3. Which clues connect to this person?
4. What questions should we ask next?

Respond in valid JSON format.`

const suspectAnalysisPromptTH = `คุณกำลังช่วยเด็กอายุ 7 ขวบแก้ปริศนาสนุกๆ!
ดูคนนี้และเบาะแส

ตอบในรูปแบบ JSON`

const caseSolutionPromptEN = `You are a brilliant detective evaluating a case solution.
Given details about a case, the evidence collected, and a proposed solution, evaluate whether:
1. The solution correctly identifies the culprit
2. The evidence supports the reasoning
3. The narrative is logical and consistent

Be fair but rigorous in your assessment.`

const caseSolutionPromptTH = `คุณเป็นนักสืบผู้เชี่ยวชาญที่กำลังประเมินการแก้คดี
ประเมินอย่างยุติธรรมและอธิบายเหตุผล`

func caseGenerationUserPrompt(params models.CaseParams) string {
	var b strings.Builder
	if params.Language == languageThai {
		fmt.Fprintf(&b, "สร้างคดีสืบสวนที่มีความยาก %s", params.Difficulty)
		if params.Theme != "" && params.Theme != "random" {
			fmt.Fprintf(&b, " ในธีม %s", params.Theme)
		}
		if params.Location != "" {
			fmt.Fprintf(&b, " ที่เกิดขึ้นใน %s", params.Location)
		}
		if params.Era != "" {
			fmt.Fprintf(&b, " ในยุค %s", params.Era)
		}
	} else {
		fmt.Fprintf(&b, "Create a %s difficulty detective case", params.Difficulty)
		if params.Theme != "" && params.Theme != "random" {
			fmt.Fprintf(&b, " with a %s theme", params.Theme)
		}
		if params.Location != "" {
			fmt.Fprintf(&b, " set in %s", params.Location)
		}
		if params.Era != "" {
			fmt.Fprintf(&b, " during the %s era", params.Era)
		}
	}
	if params.CustomScenario != "" {
		if params.Language == languageThai {
			fmt.Fprintf(&b, "\n\nเนื้อเรื่องที่ต้องการ: %s", params.CustomScenario)
		} else {
			fmt.Fprintf(&b, "\n\nBase the mystery on this scenario: %s", params.CustomScenario)
		}
	}
	return b.String()
}

func clueAnalysisUserPrompt(
	clue models.Clue,
	suspects []models.Suspect,
	caseData models.Case,
	language string,
) string {
	suspectLines := make([]string, len(suspects))
	for i, s := range suspects {
		suspectLines[i] = fmt.Sprintf("%s: %s", s.Name, s.Description)
	}

	if language == languageThai {
		return fmt.Sprintf(`ข้อมูลคดี:
ชื่อคดี: %s
สรุป: %s
สถานที่: %s

หลักฐานที่ต้องการวิเคราะห์:
ชื่อ: %s
คำอธิบาย: %s
สถานที่พบ: %s

ผู้ต้องสงสัย:
%s

กรุณาวิเคราะห์หลักฐานนี้`,
			caseData.Title, caseData.Summary, caseData.Location,
			clue.Title, clue.Description, clue.Location,
			strings.Join(suspectLines, "\n"))
	}
	return fmt.Sprintf(`Case Information:
Title: %s
Summary: %s
Location: %s

Clue to Analyze:
Title: %s
Description: %s
Location Found: %s

Suspects:
%s

Please analyze this clue and provide connections to suspects.`,
		caseData.Title, caseData.Summary, caseData.Location,
		clue.Title, clue.Description, clue.Location,
		strings.Join(suspectLines, "\n"))
}

func suspectAnalysisUserPrompt(
	suspect models.Suspect,
	clues []models.Clue,
	caseData models.Case,
	interview []models.InterviewTurn,
	language string,
) string {
	clueLines := make([]string, len(clues))
	for i, c := range clues {
		clueLines[i] = fmt.Sprintf("%s: %s", c.Title, c.Description)
	}

	var prompt string
	if language == languageThai {
		prompt = fmt.Sprintf(`ข้อมูลคดี:
ชื่อคดี: %s
สรุป: %s

ผู้ต้องสงสัย:
ชื่อ: %s
คำอธิบาย: %s
ประวัติ: %s
ข้ออ้าง: %s

หลักฐาน:
%s

กรุณาวิเคราะห์ผู้ต้องสงสัย`,
			caseData.Title, caseData.Summary,
			suspect.Name, suspect.Description, suspect.Background, suspect.Alibi,
			strings.Join(clueLines, "\n"))
	} else {
		prompt = fmt.Sprintf(`Case Information:
Title: %s
Summary: %s

Suspect to Analyze:
Name: %s
Description: %s
Background: %s
Alibi: %s

Discovered Clues:
%s

Please analyze this suspect.`,
			caseData.Title, caseData.Summary,
			suspect.Name, suspect.Description, suspect.Background, suspect.Alibi,
			strings.Join(clueLines, "\n"))
	}

	if len(interview) > 0 {
		turns := make([]string, len(interview))
		for i, turn := range interview {
			turns[i] = fmt.Sprintf("Q: %s\nA: %s", turn.Question, turn.Answer)
		}
		prompt += "\n\nInterview Records:\n" + strings.Join(turns, "\n")
	}

	return prompt
}

func interviewSystemPrompt(suspect models.Suspect, caseData models.Case, language string) string {
	if language == languageThai {
		role := "- คุณไม่ได้ทำ"
		if suspect.Guilty {
			role = "- คุณทำสิ่งนี้จริง แต่คุณไม่ได้ตั้งใจทำผิด"
		}
		return fmt.Sprintf(`คุณเป็น %s ในเรื่อง "%s"

ข้อมูลของคุณ:
- คำอธิบาย: %s
- ประวัติ: %s
- เรื่องราวของคุณ: %s

%s

ตอบคำถามด้วยคำง่ายๆ ที่เด็ก 7 ขวบเข้าใจได้
ใช้ประโยคสั้นๆ (ไม่เกิน 15 คำ)
ตอบแค่ 2-3 ประโยค`,
			suspect.Name, caseData.Title,
			suspect.Description, suspect.Background, suspect.Alibi, role)
	}

	role := "- You DIDN'T do it."
	if suspect.Guilty {
		role = "- You DID do this thing, but you didn't mean to do anything wrong."
	}
	return fmt.Sprintf(`You are %s in the mystery "%s".

Your information:
- Description: %s
- Background: %s
- Your story: %s

%s

Answer questions using simple words that a 7-year-old can understand.
Use SHORT sentences (under 15 words each).
Keep your answer to 2-3 sentences only.`,
		suspect.Name, caseData.Title,
		suspect.Description, suspect.Background, suspect.Alibi, role)
}

func solutionUserPrompt(
	caseData models.Case,
	suspects []models.Suspect,
	clues []models.Clue,
	accused models.Suspect,
	guilty models.Suspect,
	evidence []models.Clue,
	reasoning string,
	language string,
) string {
	suspectLines := make([]string, len(suspects))
	for i, s := range suspects {
		suspectLines[i] = fmt.Sprintf("- %s: %s", s.Name, s.Description)
	}
	clueLines := make([]string, len(clues))
	for i, c := range clues {
		clueLines[i] = fmt.Sprintf("- %s: %s", c.Title, c.Description)
	}
	evidenceTitles := make([]string, len(evidence))
	for i, e := range evidence {
		evidenceTitles[i] = e.Title
	}

	if language == languageThai {
		return fmt.Sprintf(`ข้อมูลคดี:
ชื่อคดี: %s
คำอธิบาย: %s

ผู้ต้องสงสัย:
%s

หลักฐาน:
%s

คำตอบที่เสนอ:
ผู้ต้องสงสัย: %s
หลักฐาน: %s
เหตุผล: %s

ผู้กระทำผิดจริง: %s

กรุณาประเมินคำตอบ`,
			caseData.Title, caseData.Description,
			strings.Join(suspectLines, "\n"), strings.Join(clueLines, "\n"),
			accused.Name, strings.Join(evidenceTitles, ", "), reasoning, guilty.Name)
	}
	return fmt.Sprintf(`Case Information:
Title: %s
Description: %s

All Suspects:
%s

Discovered Clues:
%s

Proposed Solution:
Accused Suspect: %s
Evidence Used: %s
Reasoning: %s

Actual Culprit: %s

Please evaluate the proposed solution.`,
		caseData.Title, caseData.Description,
		strings.Join(suspectLines, "\n"), strings.Join(clueLines, "\n"),
		accused.Name, strings.Join(evidenceTitles, ", "), reasoning, guilty.Name)
}
