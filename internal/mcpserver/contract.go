package mcpserver

// TrackerFormatContract describes the tracker file surface that LLM
// consumers should follow when reading or writing vault content.
const TrackerFormatContract = `# Wunjo Tracker Format Contract

All trackers are plain markdown files at the vault root. Agents insert
content under fixed heading anchors; anything outside those sections is
left untouched.

## Files and anchors

### inbox.md
Capture funnel. Sections:
- "## Inbox": unchecked checklist items ("- [ ] text") awaiting
  classification. Processed items are flipped to "- [x] text" in place.
- "## Ideas": routed idea items, one "- 💡 text" line each.
- "## Reference": routed reference items, one "- text" line each.

### projects.md
- "## Project Ideas": routed project items as "- [ ] text".
- Project status elsewhere in the file is tracked with emoji markers:
  🟢 on track, 🟡 at risk, 🔴 blocked.

### clients.md
- "## Client Notes": dated lines in the form "- YYYY-MM-DD: text".

### research.md
Starts with a "---" divider; research reports are prepended directly
after it, newest first. Each report is a "## topic" section with a
metadata line, synthesis, and a "### Sources" list.
- "## To Research": queued topics as "- text" lines.

### content.md
- "## Drafts": finished drafts as "### topic" subsections with a
  "*Type: ... | Tone: ... | Created: YYYY-MM-DD*" metadata line.
- "## Content Ideas": queued content ideas as "- text" lines.

### review.md
Starts with a "---" divider; weekly reviews are prepended after it,
newest first. Each review is a "## Week of YYYY-MM-DD" section.

## Rules
- New content goes under the anchors above. If an anchor is missing the
  section is appended to the end of the file.
- Dates always use the YYYY-MM-DD format.
- Do not reorder or rewrite existing items.
`
