package search

import "tech-blog/models"

func NewEngineWithScorer(score func(models.Post, []string) (Result, error)) *Engine {
	return &Engine{score: score, filter: Filters.apply}
}

func NewEngineWithFilter(filter func(Filters, []Result) []Result) *Engine {
	return &Engine{score: scorePost, filter: filter}
}
