package binder

// LanguagePath is the virtual path the language package is loaded under.
const LanguagePath = "<language>.cy"

// LanguagePackage is the package name of the built-in declarations.
const LanguagePackage = "language"

// LanguageSource declares the built-in types every file can see.
const LanguageSource = `package language;

shared abstract class Anything() {}
shared abstract class Object() extends Anything() {
    shared formal String string;
}
shared abstract class Basic() extends Object() {
    shared actual default String string => "";
}

shared interface Comparable<Other> {
    shared formal Integer compare(Other other);
}
shared interface Iterable<Element> {
    shared formal Boolean empty;
    shared formal Integer size();
}
shared interface Sequence<Element> satisfies Iterable<Element> {
    shared formal Element first;
    shared formal Element get(Integer index);
}

shared class Integer() satisfies Comparable<Integer> {
    shared actual Integer compare(Integer other) => 0;
}
shared class Float() satisfies Comparable<Float> {
    shared actual Integer compare(Float other) => 0;
}
shared class String() satisfies Comparable<String> & Iterable<Character> {
    shared actual Integer compare(String other) => 0;
    shared actual Boolean empty => false;
    shared actual Integer size() => 0;
}
shared class Boolean() {}
shared class Character() satisfies Comparable<Character> {
    shared actual Integer compare(Character other) => 0;
}
`
